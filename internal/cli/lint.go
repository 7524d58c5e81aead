package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopylint/internal/configloader"
	"github.com/yaklabco/gopylint/internal/logging"
	"github.com/yaklabco/gopylint/pkg/analysis"
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	_ "github.com/yaklabco/gopylint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/gopylint/pkg/parser/treesitter"
	"github.com/yaklabco/gopylint/pkg/reporter"
	"github.com/yaklabco/gopylint/pkg/runner"
)

type lintFlags struct {
	format         string
	jobs           int
	maxLineLength  int
	exclude        []string
	enable         []string
	disable        []string
	strict         bool
	noContext      bool
	compact        bool
	verbose        bool
	ruleFormat     string
	statistics     bool
	sortBy         string
	watch          bool
	debounce       time.Duration
	detectScripts  bool
	followSymlinks bool
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Python files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint Python files for style, naming and import issues.

By default, lints all .py and .pyi files (and Python scripts without an
extension) in the current directory and subdirectories. Specify paths to
lint specific files or directories.

Examples:
  gopylint lint                      # Lint current directory
  gopylint lint src/                 # Lint src directory
  gopylint lint app.py               # Lint single file
  gopylint lint --format sarif       # Output SARIF for code scanning
  gopylint lint --disable PY100      # Skip the naming convention rule
  gopylint lint --strict             # Fail on warnings too
  gopylint lint --statistics         # Show counts per rule and file
  gopylint lint --watch              # Re-lint files as they change`

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	sortBy := analysis.SortField(flags.sortBy)
	if !sortBy.IsValid() {
		return withExitCode(ExitInvalidUsage,
			fmt.Errorf("invalid --sort %q: must be one of %v", flags.sortBy, analysis.ValidSortFields()))
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(logging.WithComponent(ctx, "config"), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Overrides:    buildOverrides(cmd, flags),
		Registry:     lint.DefaultRegistry,
	})
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFiles, loadResult.LoadedFrom,
		logging.FieldMaxLineLength, cfg.Rules.MaxLineLength,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, cfg.Format,
	)

	engine := lint.NewEngine(treesitter.New(), lint.DefaultRegistry)
	lintRunner := runner.New(engine)

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     runner.DefaultExtensions(),
		ExcludeGlobs:   cfg.Paths.Exclude,
		DetectScripts:  flags.detectScripts,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		Config:         cfg,
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	repOpts := reporter.Options{
		Writer:         cmd.OutOrStdout(),
		Format:         cfg.Format,
		Color:          colorMode,
		ShowContext:    !cfg.NoContext,
		ShowSummary:    true,
		Verbose:        flags.verbose,
		Compact:        flags.compact,
		RuleFormat:     cfg.RuleFormat,
		Statistics:     flags.statistics,
		StatisticsSort: sortBy,
		WorkingDir:     workDir,
		Rules:          enabledRules(lint.DefaultRegistry, cfg),
		ToolVersion:    toolVersion(cmd),
	}

	runCtx := logging.WithComponent(ctx, "runner")
	if flags.watch {
		return watchLint(runCtx, lintRunner, runOpts, repOpts, flags.debounce)
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := lintRunner.Run(runCtx, runOpts)
	if err != nil {
		return classifyRunError(err)
	}

	logger.Debug("lint run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldDuration, result.Duration,
	)

	rep, err := reporter.New(repOpts)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return withExitCode(code, ErrLintIssuesFound)
	}

	return nil
}

// buildOverrides collects the flags the user actually set.
func buildOverrides(cmd *cobra.Command, flags *lintFlags) *configloader.Overrides {
	overrides := &configloader.Overrides{
		Exclude:   flags.exclude,
		Enable:    flags.enable,
		Disable:   flags.disable,
		NoContext: flags.noContext,
	}

	if cmd.Flags().Changed("max-line-length") {
		overrides.MaxLineLength = &flags.maxLineLength
	}
	if cmd.Flags().Changed("jobs") {
		overrides.Jobs = &flags.jobs
	}
	if cmd.Flags().Changed("format") {
		overrides.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("rule-format") {
		overrides.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}

	return overrides
}

// watchLint reports every batch until interrupted.
func watchLint(
	ctx context.Context,
	lintRunner *runner.Runner,
	runOpts runner.Options,
	repOpts reporter.Options,
	debounce time.Duration,
) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.NewInteractive().Info("watching for changes, press Ctrl+C to stop", logging.FieldPaths, runOpts.Paths)
	logger := logging.FromContext(ctx)

	rep, err := reporter.New(repOpts)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	err = lintRunner.Watch(ctx, runOpts, debounce, func(result *runner.Result) {
		if _, err := rep.Report(ctx, result); err != nil {
			logger.Error("report failed", logging.FieldError, err)
		}
	})
	if err != nil {
		return classifyRunError(err)
	}
	return nil
}

// classifyRunError assigns an exit code to a failed run.
func classifyRunError(err error) error {
	switch {
	case errors.Is(err, runner.ErrInvalidGlob):
		return withExitCode(ExitConfigError, err)
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return withExitCode(ExitIOError, err)
	default:
		return withExitCode(ExitInternalError, fmt.Errorf("lint run failed: %w", err))
	}
}

// enabledRules returns the rules that run under cfg.
func enabledRules(registry *lint.Registry, cfg *config.Config) []lint.Rule {
	resolved := lint.ResolveRules(registry, cfg)
	rules := make([]lint.Rule, 0, len(resolved))
	for _, rr := range resolved {
		rules = append(rules, rr.Rule)
	}
	return rules
}

func toolVersion(cmd *cobra.Command) string {
	if root := cmd.Root(); root != nil && root.Version != "" {
		return root.Version
	}
	return "dev"
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&flags.maxLineLength, "max-line-length", config.DefaultMaxLineLength,
		"maximum line length in characters")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to exclude")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero on warnings too")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON and SARIF output")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "print a per-rule summary")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().BoolVar(&flags.statistics, "statistics", false, "print issue counts per rule and per file")
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByCount),
		"statistics order: count, alpha, or severity")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-lint files when they change")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", runner.DefaultDebounce,
		"quiet period before re-linting in watch mode")
	cmd.Flags().BoolVar(&flags.detectScripts, "detect-scripts", true,
		"include extensionless files detected as Python")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse directory symlinks")
}
