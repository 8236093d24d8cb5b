// Package pysrc extracts top-level function definitions from Python source
// using tree-sitter, with exact byte spans so later patching never has to
// re-derive headers from text.
package pysrc

import (
	"context"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// FunctionSignature describes one top-level function definition. All fields
// are verbatim slices of the parsed snapshot; the struct is immutable once
// returned.
type FunctionSignature struct {
	Name             string
	Parameters       string // verbatim, including parentheses
	ReturnAnnotation string // verbatim annotation text, empty if none

	// StartByte/EndByte span the whole definition (excluding decorators).
	StartByte uint32
	EndByte   uint32

	// HeaderEnd is the byte offset just past the header colon. The docstring
	// insertion point for this function.
	HeaderEnd uint32

	// BodyStart is the byte offset of the first body statement.
	BodyStart uint32

	// BodyIndent is the column of the first body statement. For one-line
	// bodies this is the header column plus one indent level.
	BodyIndent int

	// HeaderIndent is the column of the def keyword.
	HeaderIndent int

	HasDocstring bool
	Source       string // verbatim function source
}

// Header returns the verbatim header text from the def keyword through the
// colon, as it appears in the file.
func (f *FunctionSignature) Header() string {
	n := int(f.HeaderEnd - f.StartByte)
	if n <= 0 || n > len(f.Source) {
		return ""
	}
	return f.Source[:n]
}

const indentWidth = 4

// Parse extracts the top-level function definitions of one Python file.
// Decorated functions count; methods and nested functions do not, matching
// the scanner's patch scope. Syntax errors are fatal for the file.
func Parse(ctx context.Context, content []byte) ([]FunctionSignature, error) {
	if !utf8.Valid(content) {
		return nil, ErrInvalidContent
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root node")
	}
	if root.HasError() {
		return nil, ErrSyntax
	}

	var functions []FunctionSignature
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "function_definition":
			if fn := processFunction(child, content); fn != nil {
				functions = append(functions, *fn)
			}
		case "decorated_definition":
			for j := 0; j < int(child.ChildCount()); j++ {
				inner := child.Child(j)
				if inner.Type() == "function_definition" {
					if fn := processFunction(inner, content); fn != nil {
						functions = append(functions, *fn)
					}
					break
				}
			}
		}
	}
	return functions, nil
}

func processFunction(node *sitter.Node, content []byte) *FunctionSignature {
	fn := FunctionSignature{
		StartByte:    node.StartByte(),
		EndByte:      node.EndByte(),
		HeaderIndent: int(node.StartPoint().Column),
		Source:       string(content[node.StartByte():node.EndByte()]),
	}

	var block *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			fn.Name = string(content[child.StartByte():child.EndByte()])
		case "parameters":
			fn.Parameters = string(content[child.StartByte():child.EndByte()])
		case "type":
			fn.ReturnAnnotation = string(content[child.StartByte():child.EndByte()])
		case ":":
			fn.HeaderEnd = child.EndByte()
		case "block":
			block = child
		}
	}

	if fn.Name == "" || fn.HeaderEnd == 0 || block == nil {
		return nil
	}

	fn.BodyStart = block.StartByte()
	if int(block.StartPoint().Row) > int(node.StartPoint().Row) {
		fn.BodyIndent = int(block.StartPoint().Column)
	} else {
		// One-line body: def f(): return x
		fn.BodyIndent = fn.HeaderIndent + indentWidth
	}
	fn.HasDocstring = hasDocstring(block)
	return &fn
}

// hasDocstring reports whether the first statement of a block is a string
// literal.
func hasDocstring(block *sitter.Node) bool {
	if block.ChildCount() == 0 {
		return false
	}
	first := block.Child(0)
	if first.Type() != "expression_statement" || first.ChildCount() == 0 {
		return false
	}
	return first.Child(0).Type() == "string"
}
