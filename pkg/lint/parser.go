package lint

import (
	"context"

	"github.com/yaklabco/gopylint/pkg/pyast"
)

// Parser turns Python source into a syntax tree.
//
// The lint package defines this interface in the consumer package.
// Implementations (e.g., parser/treesitter) provide the concrete parsing logic.
//
// Implementations must be:
//   - deterministic for a given content,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw source into a module.
	//
	// Malformed input must be reported as a *pyast.SyntaxError, positioned
	// when the parser knows where the problem is. path is a label for
	// messages and must not be used for I/O.
	Parse(ctx context.Context, path string, content []byte) (*pyast.Module, error)
}
