package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestPutAndGet(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Put("tasks/1", "report.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "tasks/1/"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	blob, err := store.Get(path)
	require.NoError(t, err)
	defer blob.Close()

	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestPutGeneratesDistinctNames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Put("tasks/1", "same.txt", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Put("tasks/1", "same.txt", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("tasks/1/missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsTolerantOfAbsentFiles(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Put("tasks/1", "doomed.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(path))
	_, err = store.Get(path)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting again is not an error
	assert.NoError(t, store.Delete(path))
	assert.NoError(t, store.Delete("tasks/99/never-existed.bin"))
}

func TestPathTraversalIsNeutralized(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	outside := filepath.Join(filepath.Dir(root), "escape.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))
	defer os.Remove(outside)

	_, err = store.Get("../escape.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}
