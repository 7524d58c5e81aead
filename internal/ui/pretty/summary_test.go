package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gopylint/internal/ui/pretty"
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 3},
			want:  "No issues found (3 files checked)\n",
		},
		{
			name:  "single file clean",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No issues found (1 file checked)\n",
		},
		{
			name: "mixed severities",
			stats: runner.Stats{
				FilesProcessed:   4,
				FilesWithIssues:  2,
				DiagnosticsTotal: 5,
				DiagnosticsBySeverity: map[config.Severity]int{
					config.SeverityError:   1,
					config.SeverityWarning: 4,
				},
			},
			want: "5 issues (1 error, 4 warnings) in 2 files\n",
		},
		{
			name: "with failed files",
			stats: runner.Stats{
				FilesProcessed:        1,
				FilesErrored:          1,
				FilesWithIssues:       1,
				DiagnosticsTotal:      1,
				DiagnosticsBySeverity: map[config.Severity]int{config.SeverityWarning: 1},
			},
			want: "1 issue (1 warning) in 1 file, 1 file could not be checked\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	out := styles.FormatSummary(runner.Stats{
		FilesProcessed:        2,
		FilesWithIssues:       1,
		FilesWithSyntaxErrors: 1,
		DiagnosticsTotal:      2,
		DiagnosticsBySeverity: map[config.Severity]int{config.SeverityError: 1, config.SeverityWarning: 1},
		DiagnosticsByRule:     map[string]int{"PY200": 1, "PY000": 1},
	})

	assert.Contains(t, out, "Files checked:")
	assert.Contains(t, out, "Syntax errors:")
	assert.Contains(t, out, "PY000:")
	assert.Less(t, indexOf(out, "PY000"), indexOf(out, "PY200"))
	assert.Contains(t, out, "Lint failed with errors")
}

func TestFormatSummary_Passed(t *testing.T) {
	styles := pretty.NewStyles(false)
	assert.Contains(t, styles.FormatSummary(runner.Stats{FilesProcessed: 1}), "Lint passed")
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
