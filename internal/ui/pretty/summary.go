package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (1 error, 4 warnings) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var suffix string
	if stats.FilesErrored > 0 {
		suffix = ", " + s.Failure.Render(fmt.Sprintf("%d %s could not be checked",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files")))
	}

	if stats.DiagnosticsTotal == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))) +
			suffix + "\n"
	}

	var severities []string
	if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
		severities = append(severities, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
		severities = append(severities, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
	}

	line := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
	if len(severities) > 0 {
		line += " (" + strings.Join(severities, ", ") + ")"
	}
	line += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files"))

	return line + suffix + "\n"
}

// FormatSummary formats run statistics as a block with per-rule counts.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row := func(label, value string) {
		builder.WriteString(fmt.Sprintf("  %-20s %s\n", label+":", value))
	}

	row("Files checked", strconv.Itoa(stats.FilesProcessed))
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesWithSyntaxErrors > 0 {
		row("Syntax errors", s.Error.Render(strconv.Itoa(stats.FilesWithSyntaxErrors)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Total issues", strconv.Itoa(stats.DiagnosticsTotal))

	ids := make([]string, 0, len(stats.DiagnosticsByRule))
	for id := range stats.DiagnosticsByRule {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		row("  "+id, strconv.Itoa(stats.DiagnosticsByRule[id]))
	}

	builder.WriteString("\n")
	switch {
	case stats.DiagnosticsBySeverity[config.SeverityError] > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.DiagnosticsTotal > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
