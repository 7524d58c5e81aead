package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gopylint/internal/ui/pretty"
)

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if .IsAvailableCommand}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

// helpRenderer renders cobra help with the shared lipgloss styles.
type helpRenderer struct {
	styles *pretty.Styles
	tmpl   *template.Template
}

func newHelpRenderer(colorMode string, writer io.Writer) *helpRenderer {
	h := &helpRenderer{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
	h.tmpl = template.Must(template.New("help").Funcs(template.FuncMap{
		"heading":    h.styles.SummaryTitle.Render,
		"command":    h.styles.Bold.Render,
		"subcommand": h.styles.RuleID.Render,
		"flags":      h.flags,
		"rpad":       rpad,
		"trimRight":  trimTrailingWhitespace,
	}).Parse(helpTemplate))
	return h
}

// flags renders pflag usages with flag names styled and descriptions aligned.
func (h *helpRenderer) flags(set *pflag.FlagSet) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		name, desc, ok := splitFlagLine(line)
		if !ok {
			continue
		}
		lines[i] = h.styles.Location.Render(name) + desc
	}
	return strings.Join(lines, "\n")
}

func (h *helpRenderer) render(w io.Writer, cmd *cobra.Command) error {
	if err := h.tmpl.Execute(w, cmd); err != nil {
		return fmt.Errorf("render help: %w", err)
	}
	return nil
}

// applyHelp installs the styled help and usage functions on cmd. Cobra
// inherits them in every subcommand. The color mode is read when help is
// shown, after flags are parsed.
func applyHelp(cmd *cobra.Command, colorMode string, writer io.Writer) {
	renderer := func(c *cobra.Command) *helpRenderer {
		mode := colorMode
		if flag := c.Flags().Lookup("color"); flag != nil {
			mode = flag.Value.String()
		}
		return newHelpRenderer(mode, writer)
	}

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := renderer(c).render(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return renderer(c).render(c.OutOrStderr(), c)
	})
}

// splitFlagLine splits a pflag usage line at the gap between the flag
// column and its description. The returned description keeps that gap.
func splitFlagLine(line string) (string, string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	idx := strings.Index(trimmed, "   ")
	if idx < 0 {
		return "", "", false
	}
	return indent + trimmed[:idx], trimmed[idx:], true
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
