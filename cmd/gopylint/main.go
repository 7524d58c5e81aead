// Package main is the entry point for the gopylint CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gopylint/internal/cli"
	"github.com/yaklabco/gopylint/internal/logging"

	// Import rules package to register built-in rules via init().
	_ "github.com/yaklabco/gopylint/pkg/lint/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, cli.ErrLintIssuesFound) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
