package rules

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// indentWidth is the required indentation step in spaces.
const indentWidth = 4

// LineStyleRule checks physical lines for length, indentation width, tabs
// and trailing whitespace. It works on raw text only.
type LineStyleRule struct {
	lint.BaseRule
}

// NewLineStyleRule creates a new line style rule.
func NewLineStyleRule() *LineStyleRule {
	return &LineStyleRule{
		BaseRule: lint.NewBaseRule(
			"PY001",
			"line-style",
			"Lines should fit the length limit, indent by multiples of four spaces, "+
				"and contain no tabs or trailing whitespace",
			[]string{"style", "whitespace", "line_length"},
			false,
		),
	}
}

// Check runs the four line checks. For each line the order is length,
// indentation, tabs, trailing whitespace.
func (r *LineStyleRule) Check(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	maxLength := ctx.Config.MaxLineLength()

	var diags []lint.Diagnostic
	for idx, line := range ctx.Lines {
		if ctx.Cancelled() {
			return nil, ctx.Ctx.Err()
		}
		diags = r.checkLine(diags, idx+1, line, maxLength)
	}

	return diags, nil
}

func (r *LineStyleRule) checkLine(diags []lint.Diagnostic, lineNum int, line string, maxLength int) []lint.Diagnostic {
	trimmed := strings.TrimSpace(line)

	if trimmed != "" && trimmed != `"""` {
		if length := utf8.RuneCountInString(line); length > maxLength {
			diags = append(diags, r.warn(lineNum, maxLength+1,
				fmt.Sprintf("Line too long (%d > %d characters)", length, maxLength)))
		}
	}

	if indent := len(line) - len(strings.TrimLeft(line, " ")); indent > 0 && indent%indentWidth != 0 && trimmed != "" {
		diags = append(diags, r.warn(lineNum, 1,
			fmt.Sprintf("Indentation of %d spaces should be a multiple of %d", indent, indentWidth)))
	}

	if tab := strings.IndexByte(line, '\t'); tab >= 0 {
		diags = append(diags, r.warn(lineNum, utf8.RuneCountInString(line[:tab])+1,
			"Line contains tabs (use spaces instead)"))
	}

	if content := strings.TrimRightFunc(line, unicode.IsSpace); len(content) < len(line) {
		diags = append(diags, r.warn(lineNum, utf8.RuneCountInString(content)+1, "Trailing whitespace"))
	}

	return diags
}

func (r *LineStyleRule) warn(line, column int, message string) lint.Diagnostic {
	return lint.NewDiagnosticAt(r.ID(), pyast.Pos{Line: line, Column: column}, message).
		WithSeverity(config.SeverityWarning).
		Build()
}
