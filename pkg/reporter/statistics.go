package reporter

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gopylint/internal/ui/pretty"
	"github.com/yaklabco/gopylint/pkg/analysis"
	"github.com/yaklabco/gopylint/pkg/config"
)

// formatStatistics renders the per-rule and per-file breakdowns as tables.
func formatStatistics(styles *pretty.Styles, report *analysis.Report, ruleFormat config.RuleFormat, width int) string {
	if report == nil || !report.Totals.HasIssues() {
		return ""
	}

	var builder strings.Builder

	builder.WriteString("\n" + styles.SummaryTitle.Render("Issues by rule") + "\n")
	rules := pretty.NewTable(styles, width, "RULE", "ISSUES", "ERRORS", "WARNINGS", "FILES")
	for _, ra := range report.ByRule {
		rules.AddRow(
			config.FormatRuleID(ruleFormat, ra.RuleID, ra.RuleName),
			strconv.Itoa(ra.Issues),
			strconv.Itoa(ra.Errors),
			strconv.Itoa(ra.Warnings),
			strconv.Itoa(len(ra.Files)),
		)
	}
	builder.WriteString(rules.Render())

	builder.WriteString("\n" + styles.SummaryTitle.Render("Issues by file") + "\n")
	files := pretty.NewTable(styles, width, "ISSUES", "ERRORS", "WARNINGS", "FILE")
	for _, fa := range report.ByFile {
		files.AddRow(
			strconv.Itoa(fa.Issues),
			strconv.Itoa(fa.Errors),
			strconv.Itoa(fa.Warnings),
			fa.Path,
		)
	}
	builder.WriteString(files.Render())

	return builder.String()
}
