// Package inspector parses Python source files with tree-sitter and exposes
// pure queries over the syntax tree: assignments, string literals, import
// aliases, decorators, docstrings, guard blocks and literal patterns.
// Queries report absence explicitly and never execute inspected code.
package inspector

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// File is the parsed representation of one Python source file. It is scoped
// to a single check invocation and never mutated.
type File struct {
	Path   string
	Source []byte
	Hash   uint64

	tree *sitter.Tree
	root *sitter.Node
}

// Parse reads and parses a Python file from disk.
func Parse(ctx context.Context, location string) (*File, error) {
	source, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseSource(ctx, location, source)
}

// ParseSource parses Python source held in memory. The name is used only for
// reporting.
func ParseSource(ctx context.Context, name string, source []byte) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	hash, err := Hash(source)
	if err != nil {
		return nil, err
	}

	return &File{
		Path:   name,
		Source: source,
		Hash:   hash,
		tree:   tree,
		root:   tree.RootNode(),
	}, nil
}

// Root exposes the module node for callers composing their own walks.
func (f *File) Root() *sitter.Node {
	return f.root
}

// HasSyntaxError reports whether the parse tree contains error or missing
// nodes. Tree-sitter recovers from bad input, so this is how an unparseable
// file surfaces.
func (f *File) HasSyntaxError() bool {
	return f.root.HasError()
}

// Line returns the 1-based line of a node.
func (f *File) Line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

func (f *File) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(f.Source[node.StartByte():node.EndByte()])
}
