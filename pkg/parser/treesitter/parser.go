// Package treesitter provides a lint.Parser backed by the tree-sitter Python grammar.
package treesitter

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/yaklabco/gopylint/pkg/pyast"
)

// errNoTree is returned when tree-sitter produces no tree at all.
var errNoTree = errors.New("tree-sitter returned no tree")

// Parser implements lint.Parser using tree-sitter-python.
// A single Parser is safe for concurrent use.
type Parser struct {
	pool *parserPool
}

// New creates a parser for Python source.
func New() *Parser {
	return &Parser{
		pool: newParserPool(sitter.NewLanguage(tree_sitter_python.Language())),
	}
}

// Parse converts Python source into a pyast.Module.
//
// Malformed input yields a *pyast.SyntaxError positioned at the first
// problem: an unbalanced bracket, an ERROR or MISSING node, or a construct
// the grammar tolerates but Python 3 rejects. Any other error means the parse itself could not
// run (cancellation, missing tree) and carries no position.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*pyast.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	if len(content) == 0 {
		return &pyast.Module{}, nil
	}

	sp := p.pool.get()
	defer p.pool.put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: %w", path, errNoTree)
	}
	defer tree.Close()

	conv := &converter{src: content}
	root := tree.RootNode()

	if root.HasError() {
		return nil, conv.syntaxError(root)
	}
	if serr := conv.lenientSyntax(root); serr != nil {
		return nil, serr
	}

	return conv.module(root), nil
}
