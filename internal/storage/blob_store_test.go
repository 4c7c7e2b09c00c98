package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageAndCommit(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	staged, err := store.Stage(bytes.NewReader([]byte("weights")))
	require.NoError(t, err)
	defer staged.Discard()

	require.NoError(t, staged.Commit("1.bin"))

	f, size, err := store.Open("1.bin")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, int64(len("weights")), size)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("weights"), data)
}

func TestDiscardRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	store, err := NewBlobStore(dir)
	require.NoError(t, err)

	staged, err := store.Stage(bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	staged.Discard()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiscardAfterCommitKeepsBlob(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	staged, err := store.Stage(bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	require.NoError(t, staged.Commit("2.csv"))
	staged.Discard()

	_, _, err = store.Open("2.csv")
	assert.NoError(t, err)
}

func TestCommitRejectsPathComponents(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	staged, err := store.Stage(bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	defer staged.Discard()

	assert.Error(t, staged.Commit(filepath.Join("..", "escape.bin")))
	assert.Error(t, staged.Commit(""))
}

func TestOpenMissing(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Open("404.bin")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	_, _, err = store.Open("../outside")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestRemove(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	staged, err := store.Stage(bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	require.NoError(t, staged.Commit("3.pt"))

	require.NoError(t, store.Remove("3.pt"))
	_, _, err = store.Open("3.pt")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	// Removing a missing blob is not an error.
	assert.NoError(t, store.Remove("3.pt"))
}
