package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/runner"
)

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stats  runner.Stats
		strict bool
		want   int
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 2},
			want:  ExitSuccess,
		},
		{
			name: "warnings only",
			stats: runner.Stats{
				FilesProcessed:        1,
				DiagnosticsTotal:      2,
				DiagnosticsBySeverity: map[config.Severity]int{config.SeverityWarning: 2},
			},
			want: ExitSuccess,
		},
		{
			name: "warnings strict",
			stats: runner.Stats{
				FilesProcessed:        1,
				DiagnosticsTotal:      2,
				DiagnosticsBySeverity: map[config.Severity]int{config.SeverityWarning: 2},
			},
			strict: true,
			want:   ExitLintWarnings,
		},
		{
			name: "errors",
			stats: runner.Stats{
				FilesProcessed:        1,
				DiagnosticsTotal:      1,
				DiagnosticsBySeverity: map[config.Severity]int{config.SeverityError: 1},
			},
			want: ExitLintErrors,
		},
		{
			name:  "every file failed",
			stats: runner.Stats{FilesErrored: 2},
			want:  ExitIOError,
		},
		{
			name:  "some files failed",
			stats: runner.Stats{FilesErrored: 1, FilesProcessed: 1},
			want:  ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCodeFromResult(&runner.Result{Stats: tt.stats}, tt.strict))
		})
	}

	assert.Equal(t, ExitSuccess, ExitCodeFromResult(nil, true))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitInternalError, ExitCode(errors.New("boom")))

	wrapped := fmt.Errorf("outer: %w", withExitCode(ExitConfigError, errors.New("bad")))
	assert.Equal(t, ExitConfigError, ExitCode(wrapped))
	assert.EqualError(t, wrapped, "outer: bad")

	assert.NoError(t, withExitCode(ExitIOError, nil))
}
