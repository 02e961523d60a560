package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreKeepsExtensionAndRandomizesName(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ref, err := store.Store(strings.NewReader("hello"), "photo.JPG")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".JPG"))
	assert.NotContains(t, ref, "photo")

	data, err := os.ReadFile(filepath.Join(store.Dir(), ref))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestStoreDistinctRefs(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.Store(strings.NewReader("a"), "same.txt")
	require.NoError(t, err)
	b, err := store.Store(strings.NewReader("b"), "same.txt")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, store.Remove("never-existed.png"))
}

func TestRemoveDeletesAndIgnoresPathTricks(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	ref, err := store.Store(strings.NewReader("x"), "a.txt")
	require.NoError(t, err)
	require.NoError(t, store.Remove(ref))
	_, statErr := os.Stat(filepath.Join(dir, ref))
	assert.True(t, os.IsNotExist(statErr))

	// refs are flat names; traversal components are stripped
	outside := filepath.Join(filepath.Dir(dir), "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))
	assert.NoError(t, store.Remove("../outside.txt"))
	_, statErr = os.Stat(outside)
	assert.NoError(t, statErr)
}

func TestPublicURL(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc.png", store.PublicURL("abc.png"))
}
