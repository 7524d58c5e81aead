package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gopylint/internal/logging"
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
)

// ErrPanic wraps a panic recovered while linting a file.
var ErrPanic = errors.New("panic while linting")

// Runner fans lint jobs for many files out over a bounded worker pool.
// Jobs share nothing but the read-only engine, so one failing file never
// affects another.
type Runner struct {
	// Engine lints a single file.
	Engine *lint.Engine
}

// New creates a new Runner with the given engine.
func New(engine *lint.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers files under opts.Paths and lints them concurrently.
// Outcomes are returned in discovery order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("discovered files",
		logging.FieldFiles, len(files),
		logging.FieldPaths, opts.effectivePaths())

	result, err := r.RunFiles(ctx, files, opts)
	if result != nil {
		result.Stats.FilesDiscovered = len(files)
	}
	return result, err
}

// RunFiles lints an explicit list of files concurrently, bounded by
// opts.Jobs. Per-file errors and panics are recorded on that file's
// outcome. The returned error is non-nil only on cancellation, in which
// case the partial result holds the files that finished.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	start := time.Now()
	result := newResult(len(files))
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var group errgroup.Group
	group.SetLimit(jobCount(opts.Jobs, len(files)))

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcomes[i] = r.lintOne(ctx, path, cfg)
			done[i] = true
			return nil
		})
	}
	_ = group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}
	result.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// lintOne runs the engine for one file, converting a panic into an error.
func (r *Runner) lintOne(ctx context.Context, path string, cfg *config.Config) (outcome FileOutcome) {
	start := time.Now()
	outcome.Path = path
	logger := logging.FromContext(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("recovered panic",
				logging.FieldPath, path,
				logging.FieldPanic, rec,
				"stack", string(debug.Stack()))
			outcome.Result = nil
			outcome.Error = fmt.Errorf("%w: %s: %v", ErrPanic, path, rec)
		}
		outcome.Duration = time.Since(start)
	}()

	res, err := r.Engine.LintFile(ctx, path, cfg)
	if err != nil {
		outcome.Error = err
		logger.Debug("lint failed", logging.FieldPath, path, logging.FieldError, err)
		return outcome
	}

	outcome.Result = res
	logger.Debug("linted",
		logging.FieldPath, path,
		logging.FieldDiagnostics, len(res.Diagnostics),
		logging.FieldDuration, time.Since(start))
	return outcome
}

func jobCount(requested, files int) int {
	jobs := requested
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return max(1, min(jobs, files))
}
