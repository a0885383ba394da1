package inspector

import (
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
)

// LayerTuple is a raw two-integer tuple literal found in an expression tree.
type LayerTuple struct {
	A, B int
	Line int
}

// RawLayerTuples finds literal (int, int) tuples anywhere in the module,
// excluding parameter default values and class bodies — those hold
// intentional low-level constants such as LayerSpec defaults.
func (f *File) RawLayerTuples() []LayerTuple {
	var tuples []LayerTuple
	walk(f.root, func(node *sitter.Node) bool {
		switch node.Type() {
		case "class_definition", "default_parameter", "typed_default_parameter":
			return false
		case "tuple":
			if a, b, ok := f.intPair(node); ok {
				tuples = append(tuples, LayerTuple{A: a, B: b, Line: f.Line(node)})
			}
		}
		return true
	})
	return tuples
}

func (f *File) intPair(tuple *sitter.Node) (int, int, bool) {
	if tuple.NamedChildCount() != 2 {
		return 0, 0, false
	}
	var values [2]int
	for i := 0; i < 2; i++ {
		element := tuple.NamedChild(i)
		if element.Type() != "integer" {
			return 0, 0, false
		}
		value, err := strconv.Atoi(f.text(element))
		if err != nil {
			return 0, 0, false
		}
		values[i] = value
	}
	return values[0], values[1], true
}
