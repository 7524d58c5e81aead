package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gopylint/internal/logging"
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/fsutil"
)

// Watch lints everything under opts.Paths once, then re-lints Python
// files as they are written or created until ctx is done. Each batch of
// changes is reported through onResult after debounce has passed without
// further events. Files whose content did not change are skipped.
func (r *Runner) Watch(ctx context.Context, opts Options, debounce time.Duration, onResult func(*Result)) error {
	if onResult == nil {
		return errors.New("watch: nil result callback")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	d, err := newDiscoverer(opts)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, input := range opts.effectivePaths() {
		if err := d.watchTree(fsw, d.abs(input)); err != nil {
			return err
		}
	}

	initial, err := r.Run(ctx, opts)
	if err != nil {
		return err
	}
	onResult(initial)

	cache := fsutil.NewContentCache()
	for _, outcome := range initial.Files {
		if _, info, err := fsutil.ReadFile(ctx, outcome.Path); err == nil {
			cache.Update(info)
		}
	}

	w := &watchLoop{runner: r, discoverer: d, cache: cache, opts: opts, pending: make(map[string]struct{})}
	return w.run(ctx, fsw, debounce, onResult)
}

type watchLoop struct {
	runner     *Runner
	discoverer *discoverer
	cache      *fsutil.ContentCache
	opts       Options
	pending    map[string]struct{}
}

func (w *watchLoop) run(ctx context.Context, fsw *fsnotify.Watcher, debounce time.Duration, onResult func(*Result)) error {
	logger := logging.FromContext(ctx)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(fsw, event) {
				timer.Reset(debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)

		case <-timer.C:
			if result := w.flush(ctx); result != nil {
				onResult(result)
			}
		}
	}
}

// handle records event and reports whether a re-lint was scheduled.
func (w *watchLoop) handle(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	path := event.Name

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.cache.Forget(path)
		delete(w.pending, path)
		return false
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.discoverer.skipDir(path) {
				if err := w.discoverer.watchTree(fsw, path); err != nil {
					logging.Default().Warn("watch new directory", logging.FieldPath, path, logging.FieldError, err)
				}
			}
			return false
		}
	}

	if !w.discoverer.accept(path) {
		return false
	}
	w.pending[path] = struct{}{}
	return true
}

// flush lints pending files whose content changed since they were last seen.
func (w *watchLoop) flush(ctx context.Context) *Result {
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	clear(w.pending)
	slices.Sort(paths)

	var changed []string
	for _, path := range paths {
		if w.changed(ctx, path) {
			changed = append(changed, path)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	cfg := w.opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	result := newResult(len(changed))
	result.Stats.FilesDiscovered = len(changed)
	start := time.Now()
	for _, path := range changed {
		result.accumulate(w.runner.lintOne(ctx, path, cfg))
	}
	result.Duration = time.Since(start)
	return result
}

// changed consults the stat fingerprint first and only hashes content
// when the stat data moved.
func (w *watchLoop) changed(ctx context.Context, path string) bool {
	if prev, ok := w.cache.Get(path); ok {
		stale, err := fsutil.Stale(ctx, prev)
		if err == nil && !stale {
			return false
		}
	}

	_, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		w.cache.Forget(path)
		return !errors.Is(err, fsutil.ErrNotFound)
	}
	return w.cache.Update(info)
}

// watchTree adds root and every non-skipped directory below it.
func (d *discoverer) watchTree(fsw *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		root = filepath.Dir(root)
	}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && d.skipDir(path) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}
