package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPatterns(t *testing.T) {
	t.Run("ShapeAndNames", func(t *testing.T) {
		patterns := UniformPatterns(1, "iris", 3, 4)

		require.Len(t, patterns, 3)
		assert.Equal(t, "iris-0", patterns[0].Name())
		assert.Equal(t, "iris-2", patterns[2].Name())
		for _, p := range patterns {
			assert.Equal(t, 4, p.Dim())
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		a := UniformPatterns(7, "p", 2, 8)
		b := UniformPatterns(7, "p", 2, 8)

		for i := range a {
			assert.True(t, a[i].Equal(b[i]))
		}
	})

	t.Run("SeedsDiffer", func(t *testing.T) {
		a := UniformPatterns(1, "p", 1, 16)
		b := UniformPatterns(2, "p", 1, 16)

		assert.False(t, a[0].Equal(b[0]))
	})
}

func TestSequencePattern(t *testing.T) {
	p := SequencePattern("seq", 100, 4)

	assert.Equal(t, []float64{100, 101, 102, 103}, p.Vector())
}
