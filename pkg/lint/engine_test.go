package lint_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// mockParser implements lint.Parser for testing.
type mockParser struct {
	parseFunc func(ctx context.Context, path string, content []byte) (*pyast.Module, error)
}

func (p *mockParser) Parse(ctx context.Context, path string, content []byte) (*pyast.Module, error) {
	if p.parseFunc != nil {
		return p.parseFunc(ctx, path, content)
	}
	return &pyast.Module{}, nil
}

func failingParser(err error) *mockParser {
	return &mockParser{parseFunc: func(context.Context, string, []byte) (*pyast.Module, error) {
		return nil, err
	}}
}

// diagnosticRule is a test rule that returns canned diagnostics.
type diagnosticRule struct {
	lint.BaseRule
	diags []lint.Diagnostic
	err   error
	calls int
}

func (r *diagnosticRule) Check(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	r.calls++
	return r.diags, r.err
}

func newTextRule(id string, diags ...lint.Diagnostic) *diagnosticRule {
	return &diagnosticRule{BaseRule: lint.NewBaseRule(id, "text-"+id, "text rule", nil, false), diags: diags}
}

func newTreeRule(id string, diags ...lint.Diagnostic) *diagnosticRule {
	return &diagnosticRule{BaseRule: lint.NewBaseRule(id, "tree-"+id, "tree rule", nil, true), diags: diags}
}

func diagAt(line int, msg string) lint.Diagnostic {
	return lint.Diagnostic{Message: msg, Line: line, Column: 1}
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()

	engine := lint.NewEngine(parser, registry)

	assert.Same(t, parser, engine.Parser)
	assert.Same(t, registry, engine.Registry)
}

func TestEngine_LintSource_OrderAndStamping(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTreeRule("PY900", diagAt(1, "tree one")))
	registry.Register(newTextRule("PY901", diagAt(2, "text")))
	registry.Register(newTreeRule("PY902", diagAt(1, "tree two")))

	engine := lint.NewEngine(&mockParser{}, registry)
	result, err := engine.LintSource(context.Background(), "pkg/mod.py", []byte("a\nb\n"), config.NewConfig())
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 3)
	assert.Equal(t, "text", result.Diagnostics[0].Message)
	assert.Equal(t, "tree one", result.Diagnostics[1].Message)
	assert.Equal(t, "tree two", result.Diagnostics[2].Message)

	for _, diag := range result.Diagnostics {
		assert.Equal(t, "pkg/mod.py", diag.FilePath)
		assert.Equal(t, config.SeverityWarning, diag.Severity)
	}
	assert.Equal(t, "PY900", result.Diagnostics[1].RuleID)
	assert.Equal(t, "tree-PY900", result.Diagnostics[1].RuleName)
	assert.True(t, result.HasIssues())
	assert.Equal(t, 3, result.IssueCount())
	assert.Nil(t, result.SyntaxError)
}

func TestEngine_LintSource_SyntaxError(t *testing.T) {
	t.Parallel()

	tree := newTreeRule("PY900", diagAt(1, "never"))
	text := newTextRule("PY901", diagAt(3, "style"))

	registry := lint.NewRegistry()
	registry.Register(tree)
	registry.Register(text)

	syntaxErr := &pyast.SyntaxError{Message: "expected ':'", Pos: pyast.Pos{Line: 2, Column: 8}}
	engine := lint.NewEngine(failingParser(syntaxErr), registry)

	result, err := engine.LintSource(context.Background(), "bad.py", []byte("x\nif True\ny\n"), nil)
	require.NoError(t, err)

	assert.Zero(t, tree.calls)
	assert.Equal(t, 1, text.calls)
	assert.Same(t, syntaxErr, result.SyntaxError)

	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, "style", result.Diagnostics[0].Message)

	syntaxDiag := result.Diagnostics[1]
	assert.Equal(t, "Syntax error: expected ':'", syntaxDiag.Message)
	assert.Equal(t, config.SeverityError, syntaxDiag.Severity)
	assert.Equal(t, lint.SyntaxErrorRuleID, syntaxDiag.RuleID)
	assert.Equal(t, lint.SyntaxErrorRuleName, syntaxDiag.RuleName)
	assert.Equal(t, 2, syntaxDiag.Line)
	assert.Equal(t, 8, syntaxDiag.Column)
	assert.Equal(t, "bad.py", syntaxDiag.FilePath)
}

func TestEngine_LintSource_UnpositionedParseFailure(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(failingParser(errors.New("boom")), lint.NewRegistry())

	result, err := engine.LintSource(context.Background(), "x.py", []byte("x"), nil)
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "Syntax error: boom", result.Diagnostics[0].Message)
	assert.Equal(t, 1, result.Diagnostics[0].Line)
	assert.Equal(t, 1, result.Diagnostics[0].Column)
}

func TestEngine_LintSource_RuleFailure(t *testing.T) {
	t.Parallel()

	broken := newTreeRule("PY900")
	broken.err = errors.New("internal")

	registry := lint.NewRegistry()
	registry.Register(newTextRule("PY901", diagAt(1, "style")))
	registry.Register(broken)

	engine := lint.NewEngine(&mockParser{}, registry)
	result, err := engine.LintSource(context.Background(), "x.py", []byte("x"), nil)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, lint.ErrRuleFailure)
	assert.Contains(t, err.Error(), "PY900")
}

func TestEngine_LintSource_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := lint.NewEngine(&mockParser{}, lint.NewRegistry())
	_, err := engine.LintSource(ctx, "x.py", []byte("x"), nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_LintSource_ClampsPositions(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTreeRule("PY900", lint.Diagnostic{Message: "nowhere"}))

	engine := lint.NewEngine(&mockParser{}, registry)
	result, err := engine.LintSource(context.Background(), "x.py", []byte("x"), nil)
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, 1, result.Diagnostics[0].Line)
	assert.Equal(t, 1, result.Diagnostics[0].Column)
}

func TestEngine_LintSource_DisabledRules(t *testing.T) {
	t.Parallel()

	skipped := newTreeRule("PY900", diagAt(1, "skipped"))
	registry := lint.NewRegistry()
	registry.Register(skipped)
	registry.Register(newTextRule("PY901", diagAt(1, "kept")))

	cfg := config.NewConfig()
	cfg.Disable = []string{"tree-py900"}

	engine := lint.NewEngine(&mockParser{}, registry)
	result, err := engine.LintSource(context.Background(), "x.py", []byte("x"), cfg)
	require.NoError(t, err)

	assert.Zero(t, skipped.calls)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "kept", result.Diagnostics[0].Message)
}

func TestEngine_LintSource_Noqa(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTreeRule("PY900", diagAt(1, "one"), diagAt(2, "two"), diagAt(3, "three")))

	src := "import os  # noqa\nimport sys  # noqa: PY123\nimport re  # noqa: tree-PY900\n"
	engine := lint.NewEngine(&mockParser{}, registry)
	result, err := engine.LintSource(context.Background(), "x.py", []byte(src), nil)
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "two", result.Diagnostics[0].Message)
}

func TestEngine_LintSource_DoesNotMutateRuleOutput(t *testing.T) {
	t.Parallel()

	rule := newTreeRule("PY900", diagAt(0, "raw"))
	registry := lint.NewRegistry()
	registry.Register(rule)

	engine := lint.NewEngine(&mockParser{}, registry)
	_, err := engine.LintSource(context.Background(), "x.py", []byte("x"), nil)
	require.NoError(t, err)

	assert.Empty(t, rule.diags[0].FilePath)
	assert.Zero(t, rule.diags[0].Line)
}

func TestEngine_LintFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "ok.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o600))

	registry := lint.NewRegistry()
	registry.Register(newTextRule("PY901", diagAt(1, "found")))

	engine := lint.NewEngine(&mockParser{}, registry)
	result, err := engine.LintFile(context.Background(), path, config.NewConfig())
	require.NoError(t, err)

	assert.Equal(t, path, result.Path)
	assert.Equal(t, []byte("x = 1\n"), result.Source)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, path, result.Diagnostics[0].FilePath)
}

func TestEngine_LintFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	engine := lint.NewEngine(&mockParser{}, lint.NewRegistry())

	_, err := engine.LintFile(context.Background(), filepath.Join(dir, "missing.py"), nil)
	assert.ErrorIs(t, err, lint.ErrFileNotFound)

	_, err = engine.LintFile(context.Background(), dir, nil)
	assert.ErrorIs(t, err, lint.ErrReadFailure)
}
