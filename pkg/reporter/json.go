package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gopylint/pkg/analysis"
	"github.com/yaklabco/gopylint/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version    string           `json:"version"`
	Files      []JSONFileResult `json:"files"`
	Summary    JSONSummary      `json:"summary"`
	Statistics *analysis.Report `json:"statistics,omitempty"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	SyntaxError bool             `json:"syntaxError,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked          int            `json:"filesChecked"`
	FilesWithIssues       int            `json:"filesWithIssues"`
	FilesWithSyntaxErrors int            `json:"filesWithSyntaxErrors"`
	FilesErrored          int            `json:"filesErrored"`
	TotalIssues           int            `json:"totalIssues"`
	BySeverity            map[string]int `json:"bySeverity"`
	ByRule                map[string]int `json:"byRule"`
	DurationMillis        int64          `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
			ByRule:     make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		output.Files = append(output.Files, r.buildFile(file))
	}

	stats := result.Stats
	output.Summary.FilesChecked = stats.FilesProcessed
	output.Summary.FilesWithIssues = stats.FilesWithIssues
	output.Summary.FilesWithSyntaxErrors = stats.FilesWithSyntaxErrors
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.TotalIssues = stats.DiagnosticsTotal
	output.Summary.DurationMillis = result.Duration.Milliseconds()
	for severity, count := range stats.DiagnosticsBySeverity {
		output.Summary.BySeverity[string(severity)] = count
	}
	for rule, count := range stats.DiagnosticsByRule {
		output.Summary.ByRule[rule] = count
	}
	if r.opts.Statistics {
		output.Statistics = analysis.Analyze(result, r.opts.analysisOptions())
	}

	return output
}

func (r *JSONReporter) buildFile(file runner.FileOutcome) JSONFileResult {
	fileResult := JSONFileResult{
		Path:        displayPath(file.Path, r.opts.WorkingDir),
		Diagnostics: make([]JSONDiagnostic, 0),
	}

	if file.Error != nil {
		fileResult.Error = file.Error.Error()
		return fileResult
	}
	if file.Result == nil {
		return fileResult
	}

	fileResult.SyntaxError = file.Result.SyntaxError != nil
	for _, diag := range file.Result.Diagnostics {
		fileResult.Diagnostics = append(fileResult.Diagnostics, JSONDiagnostic{
			RuleID:   diag.RuleID,
			RuleName: diag.RuleName,
			Severity: string(diag.Severity),
			Message:  diag.Message,
			Line:     diag.Line,
			Column:   diag.Column,
		})
	}

	return fileResult
}
