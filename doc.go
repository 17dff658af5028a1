// Package subsample selects a fixed-size, pseudorandomly-chosen subset of
// positions from equal-length numeric feature vectors.
//
// Subsample is used in feature-reduction pipelines: a caller wants to discard
// most of a pattern's dimensions, keeping only a configured fraction of them,
// while guaranteeing that patterns processed together retain the SAME
// positions so relative comparisons across patterns stay meaningful.
//
// # Quick Start
//
//	src := rng.New(42) // any seed; determinism follows the seed
//	s, _ := subsample.New[*pattern.Pattern](0.4, src)
//
//	p := pattern.New("iris-0", []float64{5.1, 3.5, 1.4, 0.2, 1.8})
//	_ = s.Filter(p)            // in place: p now has 2 of its 5 features
//
//	q, _ := s.FilterCopy(p)    // copy: p untouched, q filtered
//
// # Batch Consistency
//
// Single-pattern filtering draws a fresh index set on every call. Batch
// filtering draws ONE index set (sized from the first pattern's vector) and
// applies it to every pattern, preserving cross-pattern column
// correspondence:
//
//	_ = s.BatchFilter(patterns)           // all mutated, same columns kept
//	out, _ := s.BatchFilterCopy(patterns) // originals untouched
//
// # Determinism
//
// The sampler is deterministic exactly insofar as its random source is:
// identically-seeded sources and identical inputs produce identical outputs.
//
// # Concurrency
//
// The sampler holds no mutable state of its own, but the random source is
// shared and mutable. Use the sampler from a single goroutine, or inject an
// externally synchronized source (rng.Rand is locked).
package subsample
