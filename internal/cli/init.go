package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopylint/internal/logging"
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gopylint configuration file",
		Long: `Create a new .gopylint.toml configuration file in the current directory
holding the default settings, with every available rule listed as a comment.

Examples:
  gopylint init                      Create .gopylint.toml
  gopylint init --format yaml        Create .gopylint.yml instead
  gopylint init --output lint.toml   Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateTOML, "output format: toml or yaml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: .gopylint.toml or .gopylint.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	if flags.format != config.TemplateTOML && flags.format != config.TemplateYAML {
		return withExitCode(ExitInvalidUsage,
			fmt.Errorf("invalid format %q: must be toml or yaml", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gopylint.toml"
		if flags.format == config.TemplateYAML {
			outputPath = ".gopylint.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return withExitCode(ExitInvalidUsage,
				fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Format: flags.format,
		Rules:  templateRules(lint.DefaultRegistry),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gopylint rules' to see all available rules")

	return nil
}

func templateRules(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
		})
	}
	return infos
}
