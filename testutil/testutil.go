// Package testutil provides deterministic test-data generators shared by
// package tests and benchmarks.
package testutil

import (
	"fmt"

	"github.com/hupe1980/subsample/pattern"
	"github.com/hupe1980/subsample/rng"
)

// UniformVector generates a vector of dim random values in [0, 1) from r.
func UniformVector(r *rng.Rand, dim int) []float64 {
	vec := make([]float64, dim)
	r.FillUniform(vec)
	return vec
}

// UniformPatterns generates num patterns of dimension dim with values in
// [0, 1), named "<prefix>-<i>". Equal seeds produce equal patterns.
func UniformPatterns(seed int64, prefix string, num, dim int) []*pattern.Pattern {
	r := rng.New(seed)

	patterns := make([]*pattern.Pattern, num)
	for i := range patterns {
		patterns[i] = pattern.New(fmt.Sprintf("%s-%d", prefix, i), UniformVector(r, dim))
	}
	return patterns
}

// SequencePattern generates a pattern whose column i holds base + i. Handy
// for tracing output values back to their source columns.
func SequencePattern(name string, base float64, dim int) *pattern.Pattern {
	vec := make([]float64, dim)
	for i := range vec {
		vec[i] = base + float64(i)
	}
	return pattern.New(name, vec)
}
