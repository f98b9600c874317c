package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	data := []byte("0,0\n0,1\n10,10\n10,11\n")
	require.NoError(t, store.Put(ctx, "sets/points.txt", data))

	_, err := os.Stat(filepath.Join(tmpDir, "sets", "points.txt"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, "sets/points.txt")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 8)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "10,10", string(buf))

	all, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, data, all)
}

func TestLocalStore_AbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs.txt")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n"), 0o600))

	data, err := ReadFile(context.Background(), NewLocalStore(""), path)
	require.NoError(t, err)
	assert.Equal(t, "1,2\n", string(data))
}

func TestLocalStore_Overwrite(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "r.json", []byte("old content")))
	require.NoError(t, store.Put(ctx, "r.json", []byte("new")))

	data, err := ReadFile(ctx, store, "r.json")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestLocalStore_NotFound(t *testing.T) {
	_, err := NewLocalStore(t.TempDir()).Open(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_EmptyFile(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "empty.txt", nil))

	data, err := ReadFile(ctx, store, "empty.txt")
	require.NoError(t, err)
	assert.Empty(t, data)
}
