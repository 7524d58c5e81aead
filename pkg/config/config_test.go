package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, 88, cfg.Rules.MaxLineLength)
	assert.False(t, cfg.Rules.IgnoreUnusedVariables)
	assert.True(t, cfg.Rules.StrictPEP8)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.RuleFormatName, cfg.RuleFormat)
	assert.Zero(t, cfg.Jobs)
}

func TestConfig_MaxLineLength(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	assert.Equal(t, config.DefaultMaxLineLength, nilCfg.MaxLineLength())
	assert.Equal(t, config.DefaultMaxLineLength, (&config.Config{}).MaxLineLength())

	cfg := config.NewConfig()
	cfg.Rules.MaxLineLength = 120
	assert.Equal(t, 120, cfg.MaxLineLength())
}

func TestDecodeTOML_KeepsDefaultsForMissingKeys(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	unknown, err := config.DecodeTOML([]byte("[rules]\nmax_line_length = 100\n"), cfg)
	require.NoError(t, err)

	assert.Empty(t, unknown)
	assert.Equal(t, 100, cfg.Rules.MaxLineLength)
	assert.True(t, cfg.Rules.StrictPEP8)
}

func TestDecodeTOML_ReportsUnknownKeys(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	unknown, err := config.DecodeTOML([]byte("[rules]\nmax_line_lenght = 100\n"), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"rules.max_line_lenght"}, unknown)
	assert.Equal(t, 88, cfg.Rules.MaxLineLength)
}

func TestDecodeTOML_Malformed(t *testing.T) {
	t.Parallel()

	_, err := config.DecodeTOML([]byte("[rules\nmax_line_length = "), config.NewConfig())
	require.Error(t, err)
}

func TestDecodePyproject(t *testing.T) {
	t.Parallel()

	data := []byte(`
[project]
name = "demo"

[tool.black]
line-length = 100

[tool.gopylint]
disable = ["PY100"]

[tool.gopylint.rules]
max_line_length = 100
strict_pep8 = false
`)

	cfg := config.NewConfig()
	unknown, err := config.DecodePyproject(data, cfg)
	require.NoError(t, err)

	assert.Empty(t, unknown)
	assert.Equal(t, 100, cfg.Rules.MaxLineLength)
	assert.False(t, cfg.Rules.StrictPEP8)
	assert.Equal(t, []string{"PY100"}, cfg.Disable)
}

func TestDecodePyproject_NoTable(t *testing.T) {
	t.Parallel()

	_, err := config.DecodePyproject([]byte("[project]\nname = \"demo\"\n"), config.NewConfig())
	require.ErrorIs(t, err, config.ErrNoToolTable)
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := config.DecodeYAML([]byte("rules:\n  max_line_length: 79\npaths:\n  exclude: [\"tests/**\"]\n"), cfg)
	require.NoError(t, err)

	assert.Equal(t, 79, cfg.Rules.MaxLineLength)
	assert.True(t, cfg.Rules.StrictPEP8)
	assert.Equal(t, []string{"tests/**"}, cfg.Paths.Exclude)

	require.NoError(t, config.DecodeYAML([]byte("  \n"), cfg))
	assert.Equal(t, 79, cfg.Rules.MaxLineLength)
}

func TestGenerateTemplate_RoundTrips(t *testing.T) {
	t.Parallel()

	rules := []config.RuleInfo{{ID: "PY001", Name: "line-style", Description: "Line style", Enabled: true}}

	tomlData, err := config.GenerateTemplate(config.TemplateOptions{Format: config.TemplateTOML, Rules: rules})
	require.NoError(t, err)
	assert.Contains(t, string(tomlData), "PY001 line-style")

	fromTOML := config.NewConfig()
	unknown, err := config.DecodeTOML(tomlData, fromTOML)
	require.NoError(t, err)
	assert.Empty(t, unknown)
	assert.Equal(t, config.DefaultMaxLineLength, fromTOML.Rules.MaxLineLength)
	assert.Equal(t, []string{"build/**", "dist/**"}, fromTOML.Paths.Exclude)

	yamlData, err := config.GenerateTemplate(config.TemplateOptions{Format: config.TemplateYAML})
	require.NoError(t, err)

	fromYAML := config.NewConfig()
	require.NoError(t, config.DecodeYAML(yamlData, fromYAML))
	assert.Equal(t, fromTOML.Rules, fromYAML.Rules)
	assert.Equal(t, fromTOML.Paths, fromYAML.Paths)

	_, err = config.GenerateTemplate(config.TemplateOptions{Format: "ini"})
	require.Error(t, err)
}

func TestConfig_ToTOML(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Jobs = 4

	data, err := cfg.ToTOML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_line_length = 88")
	assert.NotContains(t, string(data), "Jobs")

	yamlData, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "max_line_length: 88")
}
