package config

import (
	"bytes"
	"fmt"
	"strings"
)

// Template formats accepted by GenerateTemplate.
const (
	TemplateTOML = "toml"
	TemplateYAML = "yaml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "toml" or "yaml".
	Format string

	// Rules lists the available rules, rendered as commentary.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
// It mirrors the lint rule metadata without importing the lint package.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
}

// GenerateTemplate creates a commented configuration file holding the defaults.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch strings.ToLower(opts.Format) {
	case "", TemplateTOML:
		return generateTOMLTemplate(opts), nil
	case TemplateYAML, "yml":
		return generateYAMLTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

func generateTOMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	defaults := NewConfig()

	buf.WriteString("# gopylint configuration\n\n")
	writeRuleComments(&buf, opts.Rules)

	buf.WriteString("# Rules to turn on or off, by ID or name.\n")
	buf.WriteString("enable = []\n")
	buf.WriteString("disable = []\n\n")

	buf.WriteString("[rules]\n")
	buf.WriteString("# Longest permitted line, in characters.\n")
	fmt.Fprintf(&buf, "max_line_length = %d\n", defaults.Rules.MaxLineLength)
	fmt.Fprintf(&buf, "ignore_unused_variables = %t\n", defaults.Rules.IgnoreUnusedVariables)
	fmt.Fprintf(&buf, "strict_pep8 = %t\n\n", defaults.Rules.StrictPEP8)

	buf.WriteString("[paths]\n")
	buf.WriteString("# Glob patterns for files to skip.\n")
	buf.WriteString("exclude = [\"build/**\", \"dist/**\"]\n")

	return buf.Bytes()
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	defaults := NewConfig()

	buf.WriteString("# gopylint configuration\n\n")
	writeRuleComments(&buf, opts.Rules)

	buf.WriteString("# Rules to turn on or off, by ID or name.\n")
	buf.WriteString("enable: []\n")
	buf.WriteString("disable: []\n\n")

	buf.WriteString("rules:\n")
	buf.WriteString("  # Longest permitted line, in characters.\n")
	fmt.Fprintf(&buf, "  max_line_length: %d\n", defaults.Rules.MaxLineLength)
	fmt.Fprintf(&buf, "  ignore_unused_variables: %t\n", defaults.Rules.IgnoreUnusedVariables)
	fmt.Fprintf(&buf, "  strict_pep8: %t\n\n", defaults.Rules.StrictPEP8)

	buf.WriteString("paths:\n")
	buf.WriteString("  # Glob patterns for files to skip.\n")
	buf.WriteString("  exclude:\n")
	buf.WriteString("    - \"build/**\"\n")
	buf.WriteString("    - \"dist/**\"\n")

	return buf.Bytes()
}

func writeRuleComments(buf *bytes.Buffer, rules []RuleInfo) {
	if len(rules) == 0 {
		return
	}
	buf.WriteString("# Available rules:\n")
	for _, rule := range rules {
		state := "on"
		if !rule.Enabled {
			state = "off"
		}
		fmt.Fprintf(buf, "#   %s %-20s (%s) %s\n", rule.ID, rule.Name, state, rule.Description)
	}
	buf.WriteString("\n")
}
