// Package lint provides the rule engine, diagnostics, and registry for gopylint.
package lint

import (
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// Diagnostic represents a single lint issue found in a file.
// Rules leave FilePath empty; the engine fills it in once per file.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "unused-import").
	RuleName string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// Line is the 1-based line of the issue.
	Line int

	// Column is the 1-based column of the issue, counted in characters.
	Column int
}

// Pos returns the diagnostic position.
func (d *Diagnostic) Pos() pyast.Pos {
	return pyast.Pos{Line: d.Line, Column: d.Column}
}

// Rule defines the interface that all lint rules must implement.
//
// A rule must be safe to share between goroutines: Check may run
// concurrently for different files and must not keep state between calls.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "PY200").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["style", "imports"]).
	Tags() []string

	// NeedsTree reports whether the rule inspects the syntax tree.
	// Rules that do not are run on raw text even when parsing fails.
	NeedsTree() bool

	// Check executes the rule and returns its diagnostics.
	//
	// Rules must:
	//   - Leave Diagnostic.FilePath empty.
	//   - Report 1-based positions.
	//   - Return error only for internal failures, not violations.
	Check(ctx *RuleContext) ([]Diagnostic, error)
}
