package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/subsample/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun(dataset string) Run {
	seed := int64(42)
	return Run{
		ID:        uuid.New(),
		Dataset:   dataset,
		Fraction:  0.4,
		Seed:      &seed,
		SourceDim: 5,
		SampleDim: 2,
		Indexes:   []int{1, 3},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// catalogContract exercises the Catalog interface against any backend.
func catalogContract(t *testing.T, cat Catalog) {
	t.Helper()
	ctx := context.Background()

	t.Run("SaveAndGet", func(t *testing.T) {
		run := testRun("iris")
		require.NoError(t, cat.SaveRun(ctx, run))

		got, err := cat.GetRun(ctx, "iris", run.ID)
		require.NoError(t, err)
		assert.Equal(t, run, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		run := testRun("iris")
		require.NoError(t, cat.SaveRun(ctx, run))

		run.SampleDim = 3
		run.Indexes = []int{0, 2, 4}
		require.NoError(t, cat.SaveRun(ctx, run))

		got, err := cat.GetRun(ctx, "iris", run.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2, 4}, got.Indexes)
	})

	t.Run("ListByDataset", func(t *testing.T) {
		a := testRun("wine")
		b := testRun("wine")
		require.NoError(t, cat.SaveRun(ctx, a))
		require.NoError(t, cat.SaveRun(ctx, b))
		require.NoError(t, cat.SaveRun(ctx, testRun("digits")))

		runs, err := cat.ListRuns(ctx, "wine")
		require.NoError(t, err)
		require.Len(t, runs, 2)
		for _, run := range runs {
			assert.Equal(t, "wine", run.Dataset)
		}
	})

	t.Run("ListEmpty", func(t *testing.T) {
		runs, err := cat.ListRuns(ctx, "no-such-dataset")
		require.NoError(t, err)
		assert.Empty(t, runs)
	})

	t.Run("Delete", func(t *testing.T) {
		run := testRun("iris")
		require.NoError(t, cat.SaveRun(ctx, run))
		require.NoError(t, cat.DeleteRun(ctx, "iris", run.ID))

		_, err := cat.GetRun(ctx, "iris", run.ID)
		assert.ErrorIs(t, err, ErrRunNotFound)

		// Deleting again is not an error.
		assert.NoError(t, cat.DeleteRun(ctx, "iris", run.ID))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := cat.GetRun(ctx, "iris", uuid.New())
		assert.ErrorIs(t, err, ErrRunNotFound)
	})
}

func TestMemoryCatalog(t *testing.T) {
	cat := NewMemory()
	defer cat.Close()

	catalogContract(t, cat)
}

func TestBoltCatalog(t *testing.T) {
	cat, err := NewBolt(filepath.Join(t.TempDir(), "catalog.db"), nil)
	require.NoError(t, err)
	defer cat.Close()

	catalogContract(t, cat)
}

func TestBadgerCatalog(t *testing.T) {
	cat, err := NewBadger(t.TempDir(), nil)
	require.NoError(t, err)
	defer cat.Close()

	catalogContract(t, cat)
}

func TestOpen(t *testing.T) {
	t.Run("DefaultsToMemory", func(t *testing.T) {
		cat, err := Open(Config{})
		require.NoError(t, err)
		defer cat.Close()

		_, ok := cat.(*Memory)
		assert.True(t, ok)
	})

	t.Run("Bolt", func(t *testing.T) {
		cat, err := Open(Config{
			Type:  BackendBolt,
			Path:  filepath.Join(t.TempDir(), "catalog.db"),
			Codec: codec.JSON{},
		})
		require.NoError(t, err)
		defer cat.Close()

		_, ok := cat.(*Bolt)
		assert.True(t, ok)
	})

	t.Run("Badger", func(t *testing.T) {
		cat, err := Open(Config{
			Type: BackendBadger,
			Path: t.TempDir(),
		})
		require.NoError(t, err)
		defer cat.Close()

		_, ok := cat.(*Badger)
		assert.True(t, ok)
	})

	t.Run("MissingPath", func(t *testing.T) {
		_, err := Open(Config{Type: BackendBolt})
		assert.Error(t, err)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := Open(Config{Type: "etcd"})
		assert.Error(t, err)
	})
}
