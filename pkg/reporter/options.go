package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gopylint/pkg/analysis"
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized text output: "auto", "always" or "never".
	Color string

	// ShowContext prints the source line and a caret under each text diagnostic.
	ShowContext bool

	// ShowSummary prints aggregate statistics after text output.
	ShowSummary bool

	// Verbose replaces the one-line summary with a per-rule block.
	Verbose bool

	// Compact disables indentation in JSON and SARIF output.
	Compact bool

	// RuleFormat controls how rule identifiers appear in text output.
	RuleFormat config.RuleFormat

	// Statistics adds per-rule and per-file breakdowns to text and JSON output.
	Statistics bool

	// StatisticsSort orders the breakdowns.
	StatisticsSort analysis.SortField

	// WorkingDir makes reported paths relative to it. Empty keeps paths as-is.
	WorkingDir string

	// Rules describes every rule that ran, for SARIF rule metadata.
	Rules []lint.Rule

	// ToolVersion is reported in SARIF driver metadata.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:         os.Stdout,
		Format:         config.FormatText,
		Color:          "auto",
		ShowContext:    true,
		ShowSummary:    true,
		RuleFormat:     config.RuleFormatName,
		StatisticsSort: analysis.SortByCount,
		ToolVersion:    "dev",
	}
}

func (o Options) analysisOptions() analysis.Options {
	return analysis.Options{
		IncludeByFile: true,
		IncludeByRule: true,
		SortBy:        o.StatisticsSort,
		WorkingDir:    o.WorkingDir,
	}
}
