package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
)

// contextIndent aligns source context under the diagnostic text.
const contextIndent = "    "

// FormatDiagnostic renders one diagnostic as
// "severity: message at path:line:col (rule)".
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, ruleFormat config.RuleFormat) string {
	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(diag.FilePath), diag.Line, diag.Column)
	rule := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	return fmt.Sprintf("%s: %s at %s %s\n",
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		location,
		s.RuleID.Render("("+rule+")"),
	)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders the source line with a caret under column.
// Tabs are shown as single spaces so the caret lines up. Lines wider than
// width are cut to a window around the column.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	line = strings.ReplaceAll(line, "\t", " ")
	if column < 1 {
		column = 1
	}

	avail := width - len(contextIndent)
	if avail > 0 && utf8.RuneCountInString(line) > avail {
		line, column = window(line, column, avail)
	}

	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")
	builder.WriteString(contextIndent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	return builder.String()
}

// window cuts line to at most size runes containing column, returning the
// slice and the column within it.
func window(line string, column, size int) (string, int) {
	runes := []rune(line)
	start := 0
	if column > size {
		start = min(column-size/2, len(runes)-size)
	}
	end := min(start+size, len(runes))
	return string(runes[start:end]), column - start
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	noun := "issues"
	if issueCount == 1 {
		noun = "issue"
	}
	return s.FilePath.Render(path) + s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, noun))
}
