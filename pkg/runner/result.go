package runner

import (
	"time"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
)

// FileOutcome is the result of linting one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result holds the file's diagnostics. Nil when Error is set.
	Result *lint.FileResult

	// Error is set if the file could not be read, a rule failed, or the
	// lint panicked. It affects this file only.
	Error error

	// Duration is the time spent on this file.
	Duration time.Duration
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int `json:"files_discovered"`

	// FilesProcessed is the number of files linted without error.
	FilesProcessed int `json:"files_processed"`

	// FilesErrored is the number of files whose job failed.
	FilesErrored int `json:"files_errored"`

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int `json:"files_with_issues"`

	// FilesWithSyntaxErrors is the number of files that failed to parse.
	FilesWithSyntaxErrors int `json:"files_with_syntax_errors"`

	// DiagnosticsTotal is the number of diagnostics across all files.
	DiagnosticsTotal int `json:"diagnostics_total"`

	// DiagnosticsBySeverity counts diagnostics per severity.
	DiagnosticsBySeverity map[config.Severity]int `json:"diagnostics_by_severity"`

	// DiagnosticsByRule counts diagnostics per rule ID.
	DiagnosticsByRule map[string]int `json:"diagnostics_by_rule"`
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per input file, in input order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Duration is the wall time of the run.
	Duration time.Duration
}

// HasErrors reports whether any error-severity diagnostic was produced.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Diagnostics flattens every file's diagnostics, file by file.
func (r *Result) Diagnostics() []lint.Diagnostic {
	if r == nil {
		return nil
	}
	out := make([]lint.Diagnostic, 0, r.Stats.DiagnosticsTotal)
	for _, outcome := range r.Files {
		if outcome.Result != nil {
			out = append(out, outcome.Result.Diagnostics...)
		}
	}
	return out
}

// Failed returns the outcomes whose job errored.
func (r *Result) Failed() []FileOutcome {
	if r == nil {
		return nil
	}
	var failed []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			failed = append(failed, outcome)
		}
	}
	return failed
}

func newResult(capacity int) *Result {
	return &Result{
		Files: make([]FileOutcome, 0, capacity),
		Stats: Stats{
			DiagnosticsBySeverity: make(map[config.Severity]int),
			DiagnosticsByRule:     make(map[string]int),
		},
	}
}

// accumulate appends outcome and folds it into the stats.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil || outcome.Result == nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.SyntaxError != nil {
		r.Stats.FilesWithSyntaxErrors++
	}

	diags := outcome.Result.Diagnostics
	if len(diags) == 0 {
		return
	}

	r.Stats.FilesWithIssues++
	r.Stats.DiagnosticsTotal += len(diags)
	for _, diag := range diags {
		severity := diag.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.DiagnosticsBySeverity[severity]++
		r.Stats.DiagnosticsByRule[diag.RuleID]++
	}
}
