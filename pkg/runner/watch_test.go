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

func nextResult(t *testing.T, results <-chan *runner.Result) *runner.Result {
	t.Helper()
	select {
	case res := <-results:
		return res
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for watch result")
		return nil
	}
}

func TestRunner_Watch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": "x = 1\n"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *runner.Result, 8)
	done := make(chan error, 1)
	go func() {
		done <- newRunner().Watch(ctx, runner.Options{WorkingDir: dir}, 200*time.Millisecond, func(res *runner.Result) {
			results <- res
		})
	}()

	initial := nextResult(t, results)
	require.Len(t, initial.Files, 1)
	assert.False(t, initial.HasIssues())

	path := filepath.Join(dir, "b.py")
	require.NoError(t, os.WriteFile(path, []byte("import os\n"), 0o600))

	changed := nextResult(t, results)
	require.Len(t, changed.Files, 1)
	assert.Equal(t, path, changed.Files[0].Path)
	require.Len(t, changed.Diagnostics(), 1)
	assert.Equal(t, "Unused import 'os'", changed.Diagnostics()[0].Message)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRunner_WatchNilCallback(t *testing.T) {
	t.Parallel()

	err := newRunner().Watch(context.Background(), runner.Options{WorkingDir: t.TempDir()}, 0, nil)
	assert.Error(t, err)
}
