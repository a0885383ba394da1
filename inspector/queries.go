package inspector

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// walk visits node and its descendants depth-first. Returning false from the
// visitor skips the node's subtree.
func walk(node *sitter.Node, visit func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		walk(node.NamedChild(i), visit)
	}
}

// Assignments returns the module-level assignment nodes whose target is
// exactly the given name. Annotated assignments are included.
func (f *File) Assignments(name string) []*sitter.Node {
	var results []*sitter.Node
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
			if left != nil && left.Type() == "identifier" && f.text(left) == name {
				results = append(results, assign)
			}
		}
	}
	return results
}

// AssignedString returns the value of a module-level assignment like
// __version__ = "1.0.0", if and only if the right-hand side is a plain
// string literal. Concatenations, f-strings and byte strings do not count.
func (f *File) AssignedString(name string) (string, bool) {
	for _, assign := range f.Assignments(name) {
		right := assign.ChildByFieldName("right")
		if right == nil || right.Type() != "string" {
			continue
		}
		if value, ok := f.plainString(right); ok {
			return value, true
		}
	}
	return "", false
}

// plainString unwraps a string node into its content. It rejects f-strings
// (interpolation) and byte strings, which are not plain literals.
func (f *File) plainString(node *sitter.Node) (string, bool) {
	raw := f.text(node)
	quote := strings.IndexAny(raw, `"'`)
	if quote < 0 {
		return "", false
	}
	prefix := strings.ToLower(raw[:quote])
	if strings.ContainsAny(prefix, "fb") {
		return "", false
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() == "interpolation" {
			return "", false
		}
	}
	return stripQuotes(raw[quote:]), true
}

func stripQuotes(raw string) string {
	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(raw, quote) && strings.HasSuffix(raw, quote) && len(raw) >= 2*len(quote) {
			return raw[len(quote) : len(raw)-len(quote)]
		}
	}
	return raw
}

// ImportAliases maps each locally bound name to the fully qualified name it
// imports, so decorator and annotation checks can match semantic intent
// rather than surface spelling:
//
//	import gdsfactory as gf      -> {"gf": "gdsfactory"}
//	from gdsfactory import cell  -> {"cell": "gdsfactory.cell"}
func (f *File) ImportAliases() map[string]string {
	aliases := map[string]string{}
	for i := 0; i < int(f.root.NamedChildCount()); i++ {
		child := f.root.NamedChild(i)
		switch child.Type() {
		case "import_statement":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				name := child.NamedChild(j)
				switch name.Type() {
				case "dotted_name":
					aliases[f.text(name)] = f.text(name)
				case "aliased_import":
					target := f.text(name.ChildByFieldName("name"))
					local := f.text(name.ChildByFieldName("alias"))
					aliases[local] = target
				}
			}
		case "import_from_statement":
			module := strings.TrimLeft(f.text(child.ChildByFieldName("module_name")), ".")
			moduleNode := child.ChildByFieldName("module_name")
			for j := 0; j < int(child.NamedChildCount()); j++ {
				name := child.NamedChild(j)
				if moduleNode != nil && name.Equal(moduleNode) {
					continue
				}
				switch name.Type() {
				case "dotted_name":
					local := f.text(name)
					aliases[local] = qualify(module, local)
				case "aliased_import":
					target := f.text(name.ChildByFieldName("name"))
					local := f.text(name.ChildByFieldName("alias"))
					aliases[local] = qualify(module, target)
				}
			}
		}
	}
	return aliases
}

func qualify(module, name string) string {
	if module == "" {
		return name
	}
	return module + "." + name
}

var mainGuardPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^__name__\s*==\s*["']__main__["']$`),
	regexp.MustCompile(`^["']__main__["']\s*==\s*__name__$`),
}

// HasMainGuard reports whether the module carries a top-level
// if __name__ == "__main__": block, in either operand order.
func (f *File) HasMainGuard() bool {
	for i := 0; i < int(f.root.NamedChildCount()); i++ {
		child := f.root.NamedChild(i)
		if child.Type() != "if_statement" {
			continue
		}
		condition := strings.TrimSpace(f.text(child.ChildByFieldName("condition")))
		for _, pattern := range mainGuardPatterns {
			if pattern.MatchString(condition) {
				return true
			}
		}
	}
	return false
}

// DefinedNames collects every name defined or imported at module level with
// its line number: assignments, classes, functions and import bindings.
func (f *File) DefinedNames() map[string]int {
	found := map[string]int{}
	record := func(name string, node *sitter.Node) {
		if name != "" {
			found[name] = f.Line(node)
		}
	}
	for i := 0; i < int(f.root.NamedChildCount()); i++ {
		child := f.root.NamedChild(i)
		switch child.Type() {
		case "expression_statement":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				assign := child.NamedChild(j)
				if assign.Type() != "assignment" {
					continue
				}
				if left := assign.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
					record(f.text(left), child)
				}
			}
		case "class_definition", "function_definition":
			record(f.text(child.ChildByFieldName("name")), child)
		case "decorated_definition":
			if def := definitionOf(child); def != nil {
				record(f.text(def.ChildByFieldName("name")), child)
			}
		case "import_statement", "import_from_statement":
			for local := range f.importBindings(child) {
				record(local, child)
			}
		}
	}
	return found
}

// importBindings returns the local names bound by a single import statement.
func (f *File) importBindings(node *sitter.Node) map[string]struct{} {
	bindings := map[string]struct{}{}
	moduleNode := node.ChildByFieldName("module_name")
	for j := 0; j < int(node.NamedChildCount()); j++ {
		name := node.NamedChild(j)
		if moduleNode != nil && name.Equal(moduleNode) {
			continue
		}
		switch name.Type() {
		case "dotted_name":
			bindings[f.text(name)] = struct{}{}
		case "aliased_import":
			bindings[f.text(name.ChildByFieldName("alias"))] = struct{}{}
		}
	}
	return bindings
}

// ClassAttributeNames collects attribute names assigned in the body of every
// class whose name satisfies the match predicate.
func (f *File) ClassAttributeNames(match func(string) bool) map[string]struct{} {
	names := map[string]struct{}{}
	walk(f.root, func(node *sitter.Node) bool {
		if node.Type() != "class_definition" {
			return true
		}
		if !match(f.text(node.ChildByFieldName("name"))) {
			return true
		}
		body := node.ChildByFieldName("body")
		if body == nil {
			return true
		}
		for i := 0; i < int(body.NamedChildCount()); i++ {
			stmt := body.NamedChild(i)
			if stmt.Type() != "expression_statement" {
				continue
			}
			for j := 0; j < int(stmt.NamedChildCount()); j++ {
				assign := stmt.NamedChild(j)
				if assign.Type() != "assignment" {
					continue
				}
				if left := assign.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
					names[f.text(left)] = struct{}{}
				}
			}
		}
		return true
	})
	return names
}

// ReexportedModules returns the module names a re-export aggregator imports,
// covering "from .waveguides import *" and "import waveguides" forms.
func (f *File) ReexportedModules() map[string]struct{} {
	exported := map[string]struct{}{}
	for i := 0; i < int(f.root.NamedChildCount()); i++ {
		child := f.root.NamedChild(i)
		switch child.Type() {
		case "import_from_statement":
			module := strings.TrimLeft(f.text(child.ChildByFieldName("module_name")), ".")
			if module != "" {
				exported[strings.Split(module, ".")[0]] = struct{}{}
			}
		case "import_statement":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				name := child.NamedChild(j)
				if name.Type() != "dotted_name" && name.Type() != "aliased_import" {
					continue
				}
				target := name
				if name.Type() == "aliased_import" {
					target = name.ChildByFieldName("name")
				}
				parts := strings.Split(f.text(target), ".")
				exported[parts[len(parts)-1]] = struct{}{}
			}
		}
	}
	return exported
}

func definitionOf(decorated *sitter.Node) *sitter.Node {
	for i := 0; i < int(decorated.NamedChildCount()); i++ {
		child := decorated.NamedChild(i)
		switch child.Type() {
		case "class_definition", "function_definition":
			return child
		}
	}
	return nil
}
