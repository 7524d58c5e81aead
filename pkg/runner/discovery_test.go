package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/runner"
)

// writeTree creates files (relative path -> content) under dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover_FindsPythonFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"test1.py":         "",
		"test2.py":         "",
		"subdir/test3.py":  "",
		"not_python.txt":   "",
		"stubs/types.pyi":  "",
		"README.md":        "",
		"upper/Module.PY":  "",
		".hidden/skip.py":  "",
		".dotfile.py":      "",
		"__pycache__/c.py": "",
		"venv/lib/x.py":    "",
		"myenv/pyvenv.cfg": "",
		"myenv/lib/y.py":   "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"stubs/types.pyi",
		"subdir/test3.py",
		"test1.py",
		"test2.py",
		"upper/Module.PY",
	}, relPaths(t, dir, files))
}

func TestDiscover_Empty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app/main.py":              "",
		"app/main_test.py":         "",
		"build/gen/out.py":         "",
		"migrations/0001.py":       "",
		"app/deep/migrations/x.py": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"*_test.py", "build/**", "**/migrations/**", "migrations"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"app/main.py"}, relPaths(t, dir, files))
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[unterminated"},
	})
	assert.ErrorIs(t, err, runner.ErrInvalidGlob)
}

func TestDiscover_ExplicitPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.py":       "",
		"b.txt":      "",
		"pkg/c.py":   "",
		"pkg/d.py":   "",
		"other/e.py": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"a.py", "b.txt", "pkg", "pkg/c.py"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.py", "pkg/c.py", "pkg/d.py"}, relPaths(t, dir, files))
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"nope"},
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_DetectScripts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"bin/tool":   "#!/usr/bin/env python3\nimport sys\nprint(sys.argv)\n",
		"bin/run":    "#!/bin/sh\necho hi\n",
		"bin/notes":  "plain words\n",
		"lib/mod.py": "",
	})

	without, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/mod.py"}, relPaths(t, dir, without))

	with, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, DetectScripts: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/tool", "lib/mod.py"}, relPaths(t, dir, with))
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": "", "b.pyw": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".PYW"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.pyw"}, relPaths(t, dir, files))
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompileGlobs(t *testing.T) {
	t.Parallel()

	globs, err := runner.CompileGlobs([]string{"*.py", "docs/**"})
	require.NoError(t, err)
	require.Len(t, globs, 2)

	assert.True(t, globs[0].Match("a.py"))
	assert.False(t, globs[0].Match("dir/a.py"))
	assert.True(t, globs[1].Match("docs/x/y.py"))
}

func TestDiscover_FollowSymlinksLoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.py":     "",
		"sub/b.py": "",
	})
	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "loop")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "sub", "back")))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	files, err := runner.Discover(ctx, runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "sub/b.py"}, relPaths(t, dir, files))
}

func TestDiscover_FollowSymlinksOutsideTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": ""})
	writeTree(t, outside, map[string]string{"lib.py": ""})
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "linked")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, relPaths(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.ElementsMatch(t, []string{"a.py", "lib.py"},
		[]string{filepath.Base(files[0]), filepath.Base(files[1])})
}
