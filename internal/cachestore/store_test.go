package cachestore_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/sitefetch/internal/cachestore"
)

func newStore(t *testing.T) cachestore.Store {
	t.Helper()
	store, err := cachestore.New(filepath.Join(t.TempDir(), "blobs"))
	require.Nil(t, err)
	return store
}

func TestNew_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blobs")

	_, err := cachestore.New(root)
	require.Nil(t, err)

	info, statErr := os.Stat(root)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestStore_PutGetRoundtrip(t *testing.T) {
	store := newStore(t)

	content := []byte("# Example Docs\n\nSome captured text.")
	require.Nil(t, store.Put("abc123", content))

	got, err := store.Get("abc123")
	require.Nil(t, err)
	assert.Equal(t, content, got)
}

func TestStore_BlobPath(t *testing.T) {
	store := newStore(t)

	path := store.BlobPath("abc123")
	assert.Equal(t, "abc123.txt", filepath.Base(path))
}

func TestStore_GetMissingKey(t *testing.T) {
	store := newStore(t)

	_, err := store.Get("missing")
	require.NotNil(t, err)
	assert.True(t, cachestore.IsNotFound(err))
}

func TestStore_Exists(t *testing.T) {
	store := newStore(t)

	assert.False(t, store.Exists("abc123"))
	require.Nil(t, store.Put("abc123", []byte("content")))
	assert.True(t, store.Exists("abc123"))
}

func TestStore_PutOverwrites(t *testing.T) {
	store := newStore(t)

	require.Nil(t, store.Put("abc123", []byte("stale")))
	require.Nil(t, store.Put("abc123", []byte("fresh")))

	got, err := store.Get("abc123")
	require.Nil(t, err)
	assert.Equal(t, "fresh", string(got))
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	store := newStore(t)

	require.Nil(t, store.Put("abc123", []byte("content")))
	require.Nil(t, store.Delete("abc123"))
	assert.False(t, store.Exists("abc123"))

	// Deleting again must not fail.
	assert.Nil(t, store.Delete("abc123"))
}

func TestStore_ConcurrentPutsSameKey(t *testing.T) {
	store := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Nil(t, store.Put("shared", []byte("identical content")))
		}()
	}
	wg.Wait()

	got, err := store.Get("shared")
	require.Nil(t, err)
	assert.Equal(t, "identical content", string(got))
}
