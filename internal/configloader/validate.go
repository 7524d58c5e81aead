package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/runner"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.max_line_length").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownRuleFormats lists valid rule format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownRuleFormats = map[config.RuleFormat]bool{
	config.RuleFormatName:     true,
	config.RuleFormatID:       true,
	config.RuleFormatCombined: true,
}

// Validate checks a configuration for errors and warnings. Rule
// identifiers are checked against registry when it is non-nil.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Rules.MaxLineLength < 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "rules.max_line_length",
			Value:   cfg.Rules.MaxLineLength,
			Message: fmt.Sprintf("must be >= 1, got %d", cfg.Rules.MaxLineLength),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, sarif", cfg.Format),
		})
	}

	if cfg.RuleFormat != "" && !knownRuleFormats[cfg.RuleFormat] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "rule_format",
			Value:   cfg.RuleFormat,
			Message: fmt.Sprintf("invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat),
		})
	}

	validateExcludePatterns(cfg, result)

	if registry != nil {
		validateRuleKeys("enable", cfg.Enable, registry, result)
		validateRuleKeys("disable", cfg.Disable, registry, result)
	}

	return result
}

// validateExcludePatterns checks that exclude patterns compile as globs.
func validateExcludePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Paths.Exclude {
		if _, err := runner.CompileGlobs([]string{pattern}); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("paths.exclude[%d]", i),
				Value:   pattern,
				Message: err.Error(),
			})
		}
	}
}

// validateRuleKeys warns about identifiers that name no registered rule.
func validateRuleKeys(field string, keys []string, registry *lint.Registry, result *ValidationResult) {
	for _, key := range keys {
		if _, ok := registry.Get(key); ok {
			continue
		}
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   field,
			Value:   key,
			Message: fmt.Sprintf("unknown rule %q; it will be ignored", strings.TrimSpace(key)),
		})
	}
}
