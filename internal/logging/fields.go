package logging

// Field keys for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldSource     = "source"

	// Run configuration.
	FieldJobs          = "jobs"
	FieldFormat        = "format"
	FieldMaxLineLength = "max_line_length"

	// Per-file and run statistics.
	FieldDuration         = "duration"
	FieldDiagnostics      = "diagnostics"
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesErrored     = "files_errored"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Build information.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rules.
	FieldRule     = "rule"
	FieldName     = "name"
	FieldSeverity = "severity"
	FieldPanic    = "panic"
)
