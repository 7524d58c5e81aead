package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		modify       func(cfg *config.Config)
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name:   "defaults are valid",
			modify: func(*config.Config) {},
		},
		{
			name:       "line length below one",
			modify:     func(cfg *config.Config) { cfg.Rules.MaxLineLength = 0 },
			wantErrors: []string{"rules.max_line_length: must be >= 1, got 0"},
		},
		{
			name:       "negative jobs",
			modify:     func(cfg *config.Config) { cfg.Jobs = -1 },
			wantErrors: []string{"jobs: jobs must be >= 0 (0 means auto)"},
		},
		{
			name:       "unknown format",
			modify:     func(cfg *config.Config) { cfg.Format = "diff" },
			wantErrors: []string{`format: invalid format "diff"; must be one of: text, json, sarif`},
		},
		{
			name:       "unknown rule format",
			modify:     func(cfg *config.Config) { cfg.RuleFormat = "long" },
			wantErrors: []string{`rule_format: invalid rule format "long"; must be one of: name, id, combined`},
		},
		{
			name: "rule keys by id and name in any case",
			modify: func(cfg *config.Config) {
				cfg.Enable = []string{"py100"}
				cfg.Disable = []string{"Unused-Import", "PY001"}
			},
		},
		{
			name:         "unknown rule key",
			modify:       func(cfg *config.Config) { cfg.Disable = []string{"E501"} },
			wantWarnings: []string{`disable: unknown rule "E501"; it will be ignored`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.modify(cfg)

			result := Validate(cfg, testRegistry())

			var errs, warns []string
			for _, e := range result.Errors {
				errs = append(errs, e.Error())
			}
			for _, w := range result.Warnings {
				warns = append(warns, w.Error())
			}
			assert.Equal(t, tt.wantErrors, errs)
			assert.Equal(t, tt.wantWarnings, warns)
			assert.Equal(t, len(tt.wantErrors) == 0, result.Valid())
		})
	}
}

func TestValidate_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Paths.Exclude = []string{"**/migrations/**", "[bad"}

	result := Validate(cfg, nil)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "paths.exclude[1]", result.Errors[0].Field)
}

func TestValidate_Nil(t *testing.T) {
	t.Parallel()

	assert.True(t, Validate(nil, nil).Valid())
}

func TestValidationResult_AllMessages(t *testing.T) {
	t.Parallel()

	result := &ValidationResult{
		Errors:   []ValidationError{{Field: "jobs", Message: "bad"}},
		Warnings: []ValidationError{{Message: "odd"}},
	}
	assert.Equal(t, []string{"error: jobs: bad", "warning: odd"}, result.AllMessages())
}
