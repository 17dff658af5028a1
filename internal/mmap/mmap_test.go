package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("OpenAndRead", func(t *testing.T) {
		path := filepath.Join(dir, "blob")
		require.NoError(t, os.WriteFile(path, []byte("hello mmap"), 0o600))

		m, err := Open(path)
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, []byte("hello mmap"), m.Bytes())

		buf := make([]byte, 4)
		n, err := m.ReadAt(buf, 6)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []byte("mmap"), buf)
	})

	t.Run("ReadAtPastEnd", func(t *testing.T) {
		path := filepath.Join(dir, "short")
		require.NoError(t, os.WriteFile(path, []byte("abc"), 0o600))

		m, err := Open(path)
		require.NoError(t, err)
		defer m.Close()

		buf := make([]byte, 8)
		n, err := m.ReadAt(buf, 1)
		assert.Equal(t, 2, n)
		assert.Error(t, err)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		path := filepath.Join(dir, "empty")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		m, err := Open(path)
		require.NoError(t, err)
		assert.Nil(t, m.Bytes())
		require.NoError(t, m.Close())
	})

	t.Run("CloseIdempotent", func(t *testing.T) {
		path := filepath.Join(dir, "close")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

		m, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, m.Close())
		require.NoError(t, m.Close())

		var nilFile *File
		assert.NoError(t, nilFile.Close())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Open(filepath.Join(dir, "missing"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
