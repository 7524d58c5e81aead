package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gopylint/pkg/langdetect"
)

// sniffBytes is how much of an extensionless file is read for detection.
const sniffBytes = 4 << 10

// ErrInvalidGlob indicates an exclude pattern failed to compile.
var ErrInvalidGlob = errors.New("invalid glob pattern")

// skippedDirs never contain first-party Python sources.
//
//nolint:gochecknoglobals // Read-only lookup table
var skippedDirs = map[string]bool{
	"__pycache__":   true,
	"node_modules":  true,
	"site-packages": true,
	"venv":          true,
}

// Discover finds Python files under opts.Paths.
// It returns a sorted, de-duplicated list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	d, err := newDiscoverer(opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	visited := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := d.abs(input)
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			// Explicitly named files skip the exclude globs but must still be Python.
			if d.isPython(absPath) {
				add(absPath)
			}
			continue
		}

		found, err := d.walk(ctx, absPath, visited)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

// CompileGlobs compiles exclude patterns with '/' as the separator.
func CompileGlobs(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidGlob, pattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// discoverer holds the compiled matching state shared by Discover and Watch.
type discoverer struct {
	workDir        string
	extensions     []string
	exclude        []glob.Glob
	detectScripts  bool
	followSymlinks bool
}

func newDiscoverer(opts Options) (*discoverer, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := CompileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	extensions := make([]string, 0, len(opts.effectiveExtensions()))
	for _, ext := range opts.effectiveExtensions() {
		extensions = append(extensions, strings.ToLower(ext))
	}

	return &discoverer{
		workDir:        workDir,
		extensions:     extensions,
		exclude:        exclude,
		detectScripts:  opts.DetectScripts,
		followSymlinks: opts.FollowSymlinks,
	}, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (d *discoverer) abs(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.workDir, path)
	}
	return filepath.Clean(path)
}

// walk collects Python files below root. When following symlinks, visited
// holds the real paths of directories already walked so cycles terminate.
func (d *discoverer) walk(ctx context.Context, root string, visited map[string]struct{}) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && d.skipDir(path) {
				return filepath.SkipDir
			}
			if d.followSymlinks && !enter(path, visited) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, ok := resolveSymlink(path)
			if !ok {
				return nil
			}
			if target.IsDir() {
				if !d.followSymlinks || d.skipDir(path) {
					return nil
				}
				realPath, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					// Target vanished since resolveSymlink, skip silently.
					return nil //nolint:nilerr // Intentionally skip broken symlinks
				}
				if _, ok := visited[realPath]; ok {
					return nil
				}
				sub, err := d.walk(ctx, realPath, visited)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if d.accept(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// enter records the real path of dir, reporting false if it was already walked.
func enter(dir string, visited map[string]struct{}) bool {
	realPath, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return true
	}
	if _, ok := visited[realPath]; ok {
		return false
	}
	visited[realPath] = struct{}{}
	return true
}

func resolveSymlink(path string) (fs.FileInfo, bool) {
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, false
	}
	info, err := os.Stat(realPath)
	if err != nil {
		return nil, false
	}
	return info, true
}

// skipDir reports whether a directory below a walk root should be pruned:
// hidden directories, caches, virtualenvs and excluded paths.
func (d *discoverer) skipDir(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || skippedDirs[name] {
		return true
	}
	if _, err := os.Stat(filepath.Join(path, "pyvenv.cfg")); err == nil {
		return true
	}
	return d.excluded(path, true)
}

// accept reports whether a file found during a walk should be linted.
func (d *discoverer) accept(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	if d.excluded(path, false) {
		return false
	}
	return d.isPython(path)
}

// excluded matches path against the exclude globs, both relative to the
// working directory and by base name.
func (d *discoverer) excluded(path string, dir bool) bool {
	if len(d.exclude) == 0 {
		return false
	}

	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, g := range d.exclude {
		if g.Match(rel) || g.Match(base) {
			return true
		}
		if dir && g.Match(rel+"/") {
			return true
		}
	}
	return false
}

// isPython checks the extension, then for extensionless files with
// detection enabled, the content.
func (d *discoverer) isPython(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		return slices.Contains(d.extensions, ext)
	}
	if !d.detectScripts {
		return false
	}

	head, err := readHead(path, sniffBytes)
	if err != nil {
		return false
	}
	return langdetect.IsPython(path, head)
}

func readHead(path string, n int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, n))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return head, nil
}
