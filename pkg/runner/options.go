// Package runner discovers Python files and lints them in parallel.
package runner

import (
	"time"

	"github.com/yaklabco/gopylint/pkg/config"
)

// DefaultDebounce is how long watch mode waits for a burst of file events
// to settle before re-linting.
const DefaultDebounce = 200 * time.Millisecond

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match exclude globs. If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) treated
	// as Python. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files or directories. Patterns are matched
	// against the slash-separated path relative to WorkingDir and against
	// the base name; "**" crosses directories.
	ExcludeGlobs []string

	// DetectScripts includes extensionless files whose shebang or content
	// identify them as Python.
	DetectScripts bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs bounds the number of files linted at once.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the default set of Python file extensions.
func DefaultExtensions() []string {
	return []string{".py", ".pyi"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
