package inspector

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Function is a top-level function definition together with its decorators.
type Function struct {
	Name string
	Line int

	file       *File
	node       *sitter.Node
	decorators []*sitter.Node
}

// Functions returns the module's top-level function definitions, decorated
// or not, in source order.
func (f *File) Functions() []*Function {
	var functions []*Function
	for i := 0; i < int(f.root.NamedChildCount()); i++ {
		child := f.root.NamedChild(i)
		switch child.Type() {
		case "function_definition":
			functions = append(functions, f.newFunction(child, nil))
		case "decorated_definition":
			def := definitionOf(child)
			if def == nil || def.Type() != "function_definition" {
				continue
			}
			var decorators []*sitter.Node
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if dec := child.NamedChild(j); dec.Type() == "decorator" {
					decorators = append(decorators, dec)
				}
			}
			functions = append(functions, f.newFunction(def, decorators))
		}
	}
	return functions
}

func (f *File) newFunction(node *sitter.Node, decorators []*sitter.Node) *Function {
	return &Function{
		Name:       f.text(node.ChildByFieldName("name")),
		Line:       f.Line(node),
		file:       f,
		node:       node,
		decorators: decorators,
	}
}

// IsPrivate reports whether the function uses the leading-underscore naming
// convention.
func (fn *Function) IsPrivate() bool {
	return strings.HasPrefix(fn.Name, "_")
}

// Params returns the function's parameter names, excluding self.
func (fn *Function) Params() []string {
	params := fn.node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		var name string
		switch child.Type() {
		case "identifier":
			name = fn.file.text(child)
		case "typed_parameter":
			if child.NamedChildCount() > 0 && child.NamedChild(0).Type() == "identifier" {
				name = fn.file.text(child.NamedChild(0))
			}
		case "default_parameter", "typed_default_parameter":
			name = fn.file.text(child.ChildByFieldName("name"))
		}
		if name != "" && name != "self" {
			names = append(names, name)
		}
	}
	return names
}

// ReturnAnnotation returns the raw text of the return annotation, or "".
func (fn *Function) ReturnAnnotation() string {
	return fn.file.text(fn.node.ChildByFieldName("return_type"))
}

// Docstring returns the function's docstring if its body starts with a plain
// string expression.
func (fn *Function) Docstring() (string, bool) {
	body := fn.node.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return "", false
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return "", false
	}
	expr := first.NamedChild(0)
	if expr.Type() != "string" {
		return "", false
	}
	value, ok := fn.file.plainString(expr)
	return strings.TrimSpace(value), ok
}

// docArgStyles is the closed set of recognized structured-docstring argument
// conventions. New styles extend this table rather than the matching logic.
var docArgStyles = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"google", regexp.MustCompile(`(?m)^\s*Args:\s*$`)},
	{"numpy", regexp.MustCompile(`(?m)^\s*Parameters\s*\n\s*-{3,}\s*$`)},
	{"sphinx", regexp.MustCompile(`(?m)^\s*:param\s+\w+`)},
}

// HasDocArgsSection reports whether a docstring documents its arguments in
// any recognized convention.
func HasDocArgsSection(docstring string) bool {
	for _, style := range docArgStyles {
		if style.pattern.MatchString(docstring) {
			return true
		}
	}
	return false
}

// platformModule is the qualified module every cell factory and component
// type must resolve to.
const platformModule = "gdsfactory"

// HasCellDecorator reports whether any of the function's decorators resolves
// to the platform cell factory through the file's import aliases.
func (fn *Function) HasCellDecorator(aliases map[string]string) bool {
	for _, dec := range fn.decorators {
		if dec.NamedChildCount() == 0 {
			continue
		}
		if fn.file.isCellDecorator(dec.NamedChild(0), aliases) {
			return true
		}
	}
	return false
}

// isCellDecorator matches @gf.cell, @cell, call forms like @gf.cell(...) and
// any alias that resolves back to the gdsfactory cell factory.
func (f *File) isCellDecorator(node *sitter.Node, aliases map[string]string) bool {
	if node.Type() == "call" {
		node = node.ChildByFieldName("function")
		if node == nil {
			return false
		}
	}
	switch node.Type() {
	case "attribute":
		attr := f.text(node.ChildByFieldName("attribute"))
		object := node.ChildByFieldName("object")
		if attr != "cell" || object == nil || object.Type() != "identifier" {
			return false
		}
		local := f.text(object)
		resolved, ok := aliases[local]
		if !ok {
			resolved = local
		}
		return strings.Contains(resolved, platformModule) || local == "gf"
	case "identifier":
		local := f.text(node)
		resolved := aliases[local]
		if strings.Contains(resolved, platformModule) && strings.Contains(resolved, "cell") {
			return true
		}
		return local == "cell" || local == "_cell"
	}
	return false
}

// ReturnsComponent reports whether the return annotation resolves to the
// platform Component type, covering gf.Component, aliased imports and string
// annotations.
func (fn *Function) ReturnsComponent(aliases map[string]string) bool {
	annotation := fn.node.ChildByFieldName("return_type")
	if annotation == nil {
		return false
	}
	// The grammar wraps the annotation expression in a type node.
	if annotation.Type() == "type" && annotation.NamedChildCount() > 0 {
		annotation = annotation.NamedChild(0)
	}
	switch annotation.Type() {
	case "attribute":
		attr := fn.file.text(annotation.ChildByFieldName("attribute"))
		object := annotation.ChildByFieldName("object")
		if attr != "Component" || object == nil || object.Type() != "identifier" {
			return false
		}
		local := fn.file.text(object)
		resolved, ok := aliases[local]
		if !ok {
			resolved = local
		}
		return strings.Contains(resolved, platformModule) || local == "gf"
	case "identifier":
		local := fn.file.text(annotation)
		return strings.Contains(local, "Component") && strings.Contains(aliases[local], platformModule)
	case "string":
		value, ok := fn.file.plainString(annotation)
		return ok && strings.Contains(value, "Component")
	}
	return false
}
