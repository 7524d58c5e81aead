package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/fsutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "mod.py")
		writeFile(t, path, "import os\n")

		content, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "import os\n", string(content))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(10), info.Size)
		assert.NotEqual(t, [32]byte{}, info.Hash)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.py"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "whatever.py")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestFileInfo_SameContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	b := filepath.Join(dir, "b.py")
	c := filepath.Join(dir, "c.py")
	writeFile(t, a, "x = 1\n")
	writeFile(t, b, "x = 1\n")
	writeFile(t, c, "x = 2\n")

	_, infoA, err := fsutil.ReadFile(context.Background(), a)
	require.NoError(t, err)
	_, infoB, err := fsutil.ReadFile(context.Background(), b)
	require.NoError(t, err)
	_, infoC, err := fsutil.ReadFile(context.Background(), c)
	require.NoError(t, err)

	assert.True(t, infoA.SameContent(infoB))
	assert.False(t, infoA.SameContent(infoC))
	assert.False(t, infoA.SameContent(nil))
}

func TestStale(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mod.py")
	writeFile(t, path, "x = 1\n")

	_, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	stale, err := fsutil.Stale(context.Background(), info)
	require.NoError(t, err)
	assert.False(t, stale)

	writeFile(t, path, "x = 1000\n")
	later := info.ModTime.Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	stale, err = fsutil.Stale(context.Background(), info)
	require.NoError(t, err)
	assert.True(t, stale)

	require.NoError(t, os.Remove(path))
	stale, err = fsutil.Stale(context.Background(), info)
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestContentCache(t *testing.T) {
	t.Parallel()

	cache := fsutil.NewContentCache()
	first := &fsutil.FileInfo{Path: "a.py", Size: 1, Hash: [32]byte{1}}
	same := &fsutil.FileInfo{Path: "a.py", Size: 1, Hash: [32]byte{1}}
	changed := &fsutil.FileInfo{Path: "a.py", Size: 1, Hash: [32]byte{2}}

	assert.True(t, cache.Update(first), "first sighting counts as a change")
	assert.False(t, cache.Update(same))
	assert.True(t, cache.Update(changed))

	got, ok := cache.Get("a.py")
	require.True(t, ok)
	assert.Equal(t, changed, got)

	cache.Forget("a.py")
	_, ok = cache.Get("a.py")
	assert.False(t, ok)
	assert.False(t, cache.Update(nil))
}
