package inspector

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Call is a constructor invocation with its keyword arguments.
type Call struct {
	Line     int
	Keywords map[string]*sitter.Node
}

// PdkCalls finds every call in the module whose callee resolves to the
// platform Pdk constructor, directly or through an import alias.
func (f *File) PdkCalls(aliases map[string]string) []*Call {
	var calls []*Call
	walk(f.root, func(node *sitter.Node) bool {
		if node.Type() != "call" {
			return true
		}
		callee := node.ChildByFieldName("function")
		if callee == nil || !f.isPdkConstructor(callee, aliases) {
			return true
		}
		call := &Call{Line: f.Line(node), Keywords: map[string]*sitter.Node{}}
		if args := node.ChildByFieldName("arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				arg := args.NamedChild(i)
				if arg.Type() != "keyword_argument" {
					continue
				}
				name := f.text(arg.ChildByFieldName("name"))
				call.Keywords[name] = arg.ChildByFieldName("value")
			}
		}
		calls = append(calls, call)
		return true
	})
	return calls
}

func (f *File) isPdkConstructor(callee *sitter.Node, aliases map[string]string) bool {
	switch callee.Type() {
	case "identifier":
		local := f.text(callee)
		resolved, ok := aliases[local]
		if !ok {
			resolved = local
		}
		return local == "Pdk" || strings.Contains(resolved, "Pdk")
	case "attribute":
		return f.text(callee.ChildByFieldName("attribute")) == "Pdk"
	}
	return false
}

// GetCellsVars returns the module-level names assigned from get_cells()
// calls, e.g. _cells = get_cells(cells).
func (f *File) GetCellsVars() map[string]struct{} {
	vars := map[string]struct{}{}
	for i := 0; i < int(f.root.NamedChildCount()); i++ {
		child := f.root.NamedChild(i)
		if child.Type() != "expression_statement" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			assign := child.NamedChild(j)
			if assign.Type() != "assignment" {
				continue
			}
			left := assign.ChildByFieldName("left")
			right := assign.ChildByFieldName("right")
			if left == nil || right == nil || left.Type() != "identifier" {
				continue
			}
			if f.isGetCellsCall(right) {
				vars[f.text(left)] = struct{}{}
			}
		}
	}
	return vars
}

// IsGetCellsValue reports whether a keyword value is a get_cells() call or a
// variable previously assigned from one.
func (f *File) IsGetCellsValue(value *sitter.Node, getCellsVars map[string]struct{}) bool {
	if value == nil {
		return false
	}
	if f.isGetCellsCall(value) {
		return true
	}
	if value.Type() == "identifier" {
		_, ok := getCellsVars[f.text(value)]
		return ok
	}
	return false
}

func (f *File) isGetCellsCall(node *sitter.Node) bool {
	if node.Type() != "call" {
		return false
	}
	callee := node.ChildByFieldName("function")
	if callee == nil {
		return false
	}
	switch callee.Type() {
	case "identifier":
		return f.text(callee) == "get_cells"
	case "attribute":
		return f.text(callee.ChildByFieldName("attribute")) == "get_cells"
	}
	return false
}
