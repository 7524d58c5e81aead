package treesitter

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/yaklabco/gopylint/pkg/pyast"
)

// maxSnippet bounds the offending text quoted in a syntax error message.
const maxSnippet = 20

// openers maps each closing bracket to its opening bracket.
//
//nolint:gochecknoglobals // Read-only lookup table
var openers = map[string]string{")": "(", "]": "[", "}": "{"}

// syntaxError describes the most specific problem in a tree with errors.
// Unbalanced brackets are reported at the offending bracket, then the
// first MISSING node, then the innermost ERROR node of the first error.
func (c *converter) syntaxError(root *sitter.Node) *pyast.SyntaxError {
	if serr := c.unbalanced(root); serr != nil {
		return serr
	}

	bad := firstError(root)
	if bad == nil {
		return &pyast.SyntaxError{Message: "invalid syntax"}
	}
	if missing := firstMissing(bad); missing != nil {
		return &pyast.SyntaxError{
			Message: fmt.Sprintf("expected '%s'", missing.Kind()),
			Pos:     c.pos(missing),
		}
	}

	token := firstLeaf(innermostError(bad))
	snippet := strings.TrimSpace(c.text(token))
	if idx := strings.IndexByte(snippet, '\n'); idx >= 0 {
		snippet = snippet[:idx]
	}
	if runes := []rune(snippet); len(runes) > maxSnippet {
		snippet = string(runes[:maxSnippet]) + "..."
	}

	msg := "invalid syntax"
	if snippet != "" {
		msg = fmt.Sprintf("invalid syntax near '%s'", snippet)
	}
	return &pyast.SyntaxError{Message: msg, Pos: c.pos(token)}
}

// unbalanced pairs bracket tokens across the whole tree. MISSING tokens
// inserted by error recovery do not count as closers.
func (c *converter) unbalanced(root *sitter.Node) *pyast.SyntaxError {
	var open []*sitter.Node
	var stray *sitter.Node

	eachLeaf(root, func(leaf *sitter.Node) bool {
		if leaf.IsMissing() {
			return true
		}
		switch kind := leaf.Kind(); kind {
		case "(", "[", "{":
			open = append(open, leaf)
		case ")", "]", "}":
			if len(open) == 0 || open[len(open)-1].Kind() != openers[kind] {
				stray = leaf
				return false
			}
			open = open[:len(open)-1]
		}
		return true
	})

	if stray != nil {
		return &pyast.SyntaxError{
			Message: fmt.Sprintf("unmatched '%s'", stray.Kind()),
			Pos:     c.pos(stray),
		}
	}
	if len(open) > 0 {
		last := open[len(open)-1]
		return &pyast.SyntaxError{
			Message: fmt.Sprintf("'%s' was never closed", last.Kind()),
			Pos:     c.pos(last),
		}
	}
	return nil
}

// eachLeaf visits leaves in document order until fn returns false.
func eachLeaf(n *sitter.Node, fn func(*sitter.Node) bool) bool {
	if n == nil {
		return true
	}
	if n.ChildCount() == 0 {
		return fn(n)
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if !eachLeaf(n.Child(i), fn) {
			return false
		}
	}
	return true
}

func firstMissing(n *sitter.Node) *sitter.Node {
	if n == nil || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if missing := firstMissing(n.Child(i)); missing != nil {
			return missing
		}
	}
	return nil
}

// innermostError descends through the first ERROR child at each level.
func innermostError(n *sitter.Node) *sitter.Node {
	for {
		var next *sitter.Node
		for i := uint(0); i < n.ChildCount(); i++ {
			if child := n.Child(i); child != nil && child.IsError() {
				next = child
				break
			}
		}
		if next == nil {
			return n
		}
		n = next
	}
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

func firstLeaf(n *sitter.Node) *sitter.Node {
	for n.ChildCount() > 0 {
		child := n.Child(0)
		if child == nil {
			break
		}
		n = child
	}
	return n
}
