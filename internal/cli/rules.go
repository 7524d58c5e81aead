package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopylint/internal/ui/pretty"
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	NeedsTree   bool     `json:"needsTree"`
	Tags        []string `json:"tags"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, names, default
severity, whether they run by default, and a description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()
			out := cmd.OutOrStdout()

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(out, rules)
			case "", string(config.FormatText):
				color, err := cmd.Flags().GetString("color")
				if err != nil {
					color = pretty.ColorAuto
				}
				return outputRulesTable(out, rules, config.RuleFormat(flags.ruleFormat), color)
			default:
				return withExitCode(ExitInvalidUsage,
					fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func outputRulesTable(out io.Writer, rules []lint.Rule, ruleFormat config.RuleFormat, color string) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))
	table := pretty.NewTable(styles, pretty.TerminalWidth(out), "RULE", "SEVERITY", "DEFAULT", "TAGS", "DESCRIPTION")

	for _, rule := range rules {
		enabled := "off"
		if rule.DefaultEnabled() {
			enabled = "on"
		}
		table.AddRow(
			config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()),
			string(rule.DefaultSeverity()),
			enabled,
			strings.Join(rule.Tags(), ","),
			rule.Description(),
		)
	}

	if _, err := io.WriteString(out, table.Render()); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}
	return nil
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(out io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			NeedsTree:   rule.NeedsTree(),
			Tags:        rule.Tags(),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
