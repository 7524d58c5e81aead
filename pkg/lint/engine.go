package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/fsutil"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// Identity of the synthetic diagnostic reported for unparseable files.
const (
	SyntaxErrorRuleID   = "PY000"
	SyntaxErrorRuleName = "syntax-error"
)

// Sentinel errors for error categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates insufficient permissions to read the file.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrReadFailure indicates any other failure to read the file.
	ErrReadFailure = errors.New("read failed")

	// ErrRuleFailure indicates a rule returned an internal error.
	ErrRuleFailure = errors.New("rule failed")
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Path is the file path stamped on every diagnostic.
	Path string

	// Source is the linted content.
	Source []byte

	// Diagnostics holds text-rule diagnostics in line order, followed by
	// either the syntax-error diagnostic or the tree rules' diagnostics in
	// registration order.
	Diagnostics []Diagnostic

	// SyntaxError is set when the file could not be parsed.
	SyntaxError *pyast.SyntaxError
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// Engine coordinates parsing and rule execution for linting.
// An Engine holds no per-file state and may be shared between goroutines.
type Engine struct {
	// Parser parses Python source into syntax trees.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile reads and lints a single file. Read failures are returned as
// errors wrapping ErrFileNotFound, ErrPermissionDenied or ErrReadFailure.
func (e *Engine) LintFile(ctx context.Context, path string, cfg *config.Config) (*FileResult, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeReadError(err)
	}
	return e.LintSource(ctx, path, content, cfg)
}

// LintSource lints content that was read from path.
//
// Text rules always run. If parsing fails, a single error diagnostic
// replaces the output of every tree rule. A rule failure aborts the file:
// no partial result is returned.
func (e *Engine) LintSource(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("linting cancelled: %w", err)
	}

	resolved := ResolveRules(e.Registry, cfg)

	tree, syntaxErr, err := e.parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	ruleCtx := NewRuleContext(ctx, tree, content, cfg)
	suppressions := ParseSuppressions(ruleCtx.Lines)
	result := &FileResult{Path: path, Source: content, SyntaxError: syntaxErr}

	for _, rr := range resolved {
		if rr.Rule.NeedsTree() {
			continue
		}
		diags, err := runRule(ruleCtx, rr, suppressions)
		if err != nil {
			return nil, err
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	if syntaxErr != nil {
		result.Diagnostics = append(result.Diagnostics, syntaxDiagnostic(syntaxErr))
	} else {
		for _, rr := range resolved {
			if !rr.Rule.NeedsTree() {
				continue
			}
			diags, err := runRule(ruleCtx, rr, suppressions)
			if err != nil {
				return nil, err
			}
			result.Diagnostics = append(result.Diagnostics, diags...)
		}
	}

	for i := range result.Diagnostics {
		result.Diagnostics[i].FilePath = path
	}

	return result, nil
}

// parse separates malformed input, which becomes a diagnostic, from
// failures of the parse itself, which abort the file.
func (e *Engine) parse(ctx context.Context, path string, content []byte) (*pyast.Module, *pyast.SyntaxError, error) {
	tree, err := e.Parser.Parse(ctx, path, content)
	if err == nil {
		return tree, nil, nil
	}

	var syntaxErr *pyast.SyntaxError
	if errors.As(err, &syntaxErr) {
		return nil, syntaxErr, nil
	}
	if ctx.Err() != nil {
		return nil, nil, fmt.Errorf("linting cancelled: %w", ctx.Err())
	}
	return nil, &pyast.SyntaxError{Message: err.Error()}, nil
}

func runRule(ruleCtx *RuleContext, rr ResolvedRule, suppressions Suppressions) ([]Diagnostic, error) {
	if ruleCtx.Cancelled() {
		return nil, fmt.Errorf("linting cancelled: %w", ruleCtx.Ctx.Err())
	}

	diags, err := rr.Rule.Check(ruleCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRuleFailure, rr.Rule.ID(), err)
	}

	kept := make([]Diagnostic, 0, len(diags))
	for _, diag := range diags {
		if suppressions.Suppressed(rr.Rule, diag) {
			continue
		}
		if diag.RuleID == "" {
			diag.RuleID = rr.Rule.ID()
		}
		if diag.RuleName == "" {
			diag.RuleName = rr.Rule.Name()
		}
		if diag.Severity == "" {
			diag.Severity = rr.Severity
		}
		diag.Line = max(diag.Line, 1)
		diag.Column = max(diag.Column, 1)
		kept = append(kept, diag)
	}

	return kept, nil
}

func syntaxDiagnostic(syntaxErr *pyast.SyntaxError) Diagnostic {
	pos := syntaxErr.Pos
	if !pos.IsValid() {
		pos = pyast.Pos{Line: 1, Column: 1}
	}

	diag := NewDiagnosticAt(SyntaxErrorRuleID, pos, "Syntax error: "+syntaxErr.Message).
		WithSeverity(config.SeverityError).
		Build()
	diag.RuleName = SyntaxErrorRuleName
	return diag
}

// categorizeReadError wraps a fsutil error with the matching sentinel.
func categorizeReadError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
}
