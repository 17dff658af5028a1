package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract exercises the Store interface against any implementation.
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("PutOpenRead", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/one.psn", []byte("payload-one")))

		blob, err := store.Open(ctx, "a/one.psn")
		require.NoError(t, err)
		defer blob.Close()

		assert.Equal(t, int64(11), blob.Size())

		buf := make([]byte, 7)
		n, err := blob.ReadAt(ctx, buf, 0)
		require.NoError(t, err)
		assert.Equal(t, 7, n)
		assert.Equal(t, []byte("payload"), buf)

		buf = make([]byte, 3)
		n, err = blob.ReadAt(ctx, buf, 8)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []byte("one"), buf)
	})

	t.Run("ReadAll", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/two.psn", []byte("payload-two")))

		data, err := ReadAll(ctx, store, "a/two.psn")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload-two"), data)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "b/three.psn", []byte("x")))

		names, err := store.List(ctx, "a/")
		require.NoError(t, err)
		assert.Equal(t, []string{"a/one.psn", "a/two.psn"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, all, "b/three.psn")
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/one.psn", []byte("fresh")))

		data, err := ReadAll(ctx, store, "a/one.psn")
		require.NoError(t, err)
		assert.Equal(t, []byte("fresh"), data)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "a/one.psn"))

		_, err := store.Open(ctx, "a/one.psn")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting again is not an error.
		assert.NoError(t, store.Delete(ctx, "a/one.psn"))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "missing.psn")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	storeContract(t, NewLocalStore(t.TempDir()))
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("mutable")
	require.NoError(t, store.Put(ctx, "blob", data))
	data[0] = 'X'

	got, err := ReadAll(ctx, store, "blob")
	require.NoError(t, err)
	assert.Equal(t, []byte("mutable"), got)
}

func TestUploader(t *testing.T) {
	ctx := context.Background()

	t.Run("UploadsAll", func(t *testing.T) {
		store := NewMemoryStore()
		u := NewUploader(store, WithConcurrency(2))

		items := []Item{
			{Name: "runs/1.psn", Data: []byte("one")},
			{Name: "runs/2.psn", Data: []byte("two")},
			{Name: "runs/3.psn", Data: []byte("three")},
		}
		require.NoError(t, u.Upload(ctx, items))

		names, err := store.List(ctx, "runs/")
		require.NoError(t, err)
		assert.Len(t, names, 3)
	})

	t.Run("RateLimited", func(t *testing.T) {
		store := NewMemoryStore()
		// Generous limit so the test stays fast; the limiter path still runs.
		u := NewUploader(store, WithRateLimit(1<<20))

		require.NoError(t, u.Upload(ctx, []Item{
			{Name: "big.psn", Data: make([]byte, 4096)},
		}))

		data, err := ReadAll(ctx, store, "big.psn")
		require.NoError(t, err)
		assert.Len(t, data, 4096)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		store := NewMemoryStore()
		u := NewUploader(store, WithRateLimit(1))

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		err := u.Upload(canceled, []Item{{Name: "x", Data: []byte("data")}})
		assert.Error(t, err)
	})
}
