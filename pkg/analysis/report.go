package analysis

// Report holds aggregated views of a lint run.
type Report struct {
	// ByFile lists files with at least one diagnostic.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule lists rules that produced at least one diagnostic.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals contains aggregate counts.
	Totals Totals `json:"totals"`
}

// Totals contains aggregate counts for the report.
type Totals struct {
	Files                 int `json:"files"`
	FilesWithIssues       int `json:"filesWithIssues"`
	FilesWithSyntaxErrors int `json:"filesWithSyntaxErrors"`
	FilesErrored          int `json:"filesErrored"`
	Issues                int `json:"issues"`
	Errors                int `json:"errors"`
	Warnings              int `json:"warnings"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// FileAnalysis contains counts for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis contains counts for a single rule.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Files    []string `json:"files,omitempty"`
}
