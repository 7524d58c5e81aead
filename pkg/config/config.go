// Package config defines core configuration types for gopylint.
// These types are pure data structures; discovery and layering live in internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	return s == SeverityError || s == SeverityWarning
}

// DefaultMaxLineLength matches the black formatter's default.
const DefaultMaxLineLength = 88

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
)

// IsValid reports whether f is a supported output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "unused-import"
	RuleFormatID       RuleFormat = "id"       // "PY200"
	RuleFormatCombined RuleFormat = "combined" // "PY200/unused-import"
)

// RulesConfig holds the options consumed by the built-in rules.
type RulesConfig struct {
	// MaxLineLength is the longest permitted line, counted in characters.
	MaxLineLength int `toml:"max_line_length" yaml:"max_line_length"`

	// IgnoreUnusedVariables is accepted for compatibility; no check reads it yet.
	IgnoreUnusedVariables bool `toml:"ignore_unused_variables" yaml:"ignore_unused_variables"`

	// StrictPEP8 is accepted for compatibility; no check reads it yet.
	StrictPEP8 bool `toml:"strict_pep8" yaml:"strict_pep8"`
}

// PathsConfig controls which files are linted.
type PathsConfig struct {
	// Exclude contains glob patterns for files and directories to skip.
	Exclude []string `toml:"exclude" yaml:"exclude"`
}

// Config is the root configuration structure for gopylint.
type Config struct {
	Rules RulesConfig `toml:"rules" yaml:"rules"`
	Paths PathsConfig `toml:"paths" yaml:"paths"`

	// Enable lists rule IDs or names to turn on in addition to the defaults.
	Enable []string `toml:"enable" yaml:"enable"`

	// Disable lists rule IDs or names to turn off.
	Disable []string `toml:"disable" yaml:"disable"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `toml:"-" yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `toml:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers. Zero means one per CPU.
	Jobs int `toml:"-" yaml:"-"`

	// NoContext hides the source line under each text diagnostic.
	NoContext bool `toml:"-" yaml:"-"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			MaxLineLength:         DefaultMaxLineLength,
			IgnoreUnusedVariables: false,
			StrictPEP8:            true,
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
	}
}

// MaxLineLength returns the configured limit, falling back to the default
// for a nil or zero-valued config.
func (c *Config) MaxLineLength() int {
	if c == nil || c.Rules.MaxLineLength <= 0 {
		return DefaultMaxLineLength
	}
	return c.Rules.MaxLineLength
}
