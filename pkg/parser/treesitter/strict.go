package treesitter

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/yaklabco/gopylint/pkg/pyast"
)

// legacyStatements are Python 2 statement forms the grammar still accepts.
//
//nolint:gochecknoglobals // Read-only lookup table
var legacyStatements = map[string]string{
	"print_statement": "print",
	"exec_statement":  "exec",
}

// lenientSyntax finds constructs the grammar parses without an ERROR node
// but Python 3 rejects: print and exec statements, the '<>' operator and
// compound statements with no indented body. The first one in document
// order wins.
func (c *converter) lenientSyntax(n *sitter.Node) *pyast.SyntaxError {
	if n == nil {
		return nil
	}

	kind := n.Kind()
	if name, ok := legacyStatements[kind]; ok {
		return &pyast.SyntaxError{
			Message: fmt.Sprintf("Missing parentheses in call to '%s'", name),
			Pos:     c.pos(n),
		}
	}
	if kind == "<>" && !n.IsNamed() {
		return &pyast.SyntaxError{Message: "invalid syntax near '<>'", Pos: c.pos(n)}
	}
	if kind == "block" && len(namedChildren(n)) == 0 {
		return &pyast.SyntaxError{Message: "expected an indented block", Pos: c.following(n)}
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		if err := c.lenientSyntax(n.Child(i)); err != nil {
			return err
		}
	}
	return nil
}

// following returns the position of the first statement after an empty
// block, or the block's end when nothing follows it.
func (c *converter) following(block *sitter.Node) pyast.Pos {
	for n := block; n != nil; n = n.Parent() {
		for sib := n.NextNamedSibling(); sib != nil; sib = sib.NextNamedSibling() {
			if sib.Kind() != "comment" {
				return c.pos(sib)
			}
		}
	}
	end := block.EndPosition()
	return pyast.Pos{Line: int(end.Row) + 1, Column: int(end.Column) + 1}
}
