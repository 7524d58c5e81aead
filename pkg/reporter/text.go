package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gopylint/internal/ui/pretty"
	"github.com/yaklabco/gopylint/pkg/analysis"
	"github.com/yaklabco/gopylint/pkg/pyast"
	"github.com/yaklabco/gopylint/pkg/runner"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No Python files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		if r.opts.Verbose {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
	}

	if r.opts.Statistics {
		report := analysis.Analyze(result, r.opts.analysisOptions())
		fmt.Fprint(r.bw, formatStatistics(r.styles, report, r.opts.RuleFormat, r.width))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if file.Result == nil || len(file.Result.Diagnostics) == 0 {
		return 0
	}

	var lines []string
	if r.opts.ShowContext {
		lines = pyast.SplitLines(file.Result.Source)
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Result.Diagnostics)))
	for _, diag := range file.Result.Diagnostics {
		diag.FilePath = path
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, r.opts.RuleFormat))

		if diag.Line >= 1 && diag.Line <= len(lines) {
			fmt.Fprint(r.bw, r.styles.FormatSourceContext(lines[diag.Line-1], diag.Column, r.width))
		}
	}
	fmt.Fprintln(r.bw)

	return len(file.Result.Diagnostics)
}
