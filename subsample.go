package subsample

import (
	"math"
	"time"

	"github.com/hupe1980/subsample/internal/indexset"
	"github.com/hupe1980/subsample/rng"
)

// Pattern is the contract the sampler requires from a feature-vector
// container.
//
// The self-referential type parameter lets implementations return their
// concrete type from Clone without importing this package.
// pattern.Pattern satisfies it; so does any caller-owned vector type.
type Pattern[P any] interface {
	// Vector returns the pattern's feature vector. The sampler never
	// mutates the returned slice; it replaces it wholesale via SetVector.
	Vector() []float64

	// SetVector replaces the pattern's feature vector wholesale.
	SetVector(vector []float64)

	// Clone returns a deep copy with independent vector storage.
	Clone() P
}

// Filter is the contract of a pattern filter: the four operation shapes
// over single patterns and batches, in place and on copies.
type Filter[P Pattern[P]] interface {
	Filter(p P) error
	FilterCopy(p P) (P, error)
	BatchFilter(ps []P) error
	BatchFilterCopy(ps []P) ([]P, error)
}

// Sampler keeps a pseudorandomly chosen fraction of each pattern's
// features.
//
// Single-pattern operations draw indexes independently each call. Batch
// operations draw one shared index set (sized from the first pattern's
// vector length) and apply it uniformly to every pattern, so relative
// comparisons across the batch remain meaningful.
//
// The fraction and random source are fixed at construction. The sampler
// itself holds no mutable state; see the package documentation for the
// concurrency contract on the source.
type Sampler[P Pattern[P]] struct {
	fraction  float64
	src       rng.Source
	logger    *Logger
	collector MetricsCollector
	drawHook  func(indexes []int)
}

var _ Filter[*noopPattern] = (*Sampler[*noopPattern])(nil)

// New creates a new Sampler that keeps the given fraction of each
// pattern's features.
//
// fraction must be in the open interval (0, 1) and src must not be nil;
// both are immutable for the sampler's lifetime. The source is shared by
// reference, not owned.
func New[P Pattern[P]](fraction float64, src rng.Source, optFns ...Option) (*Sampler[P], error) {
	if fraction <= 0 || fraction >= 1 {
		return nil, &ErrInvalidFraction{Fraction: fraction}
	}

	if src == nil {
		return nil, ErrNilSource
	}

	o := applyOptions(optFns)

	return &Sampler[P]{
		fraction:  fraction,
		src:       src,
		logger:    o.logger,
		collector: o.metricsCollector,
		drawHook:  o.drawHook,
	}, nil
}

// Fraction returns the configured retain fraction.
func (s *Sampler[P]) Fraction() float64 {
	return s.fraction
}

// Filter replaces p's vector with the projection onto a freshly drawn
// index set. The vector is replaced wholesale, not edited element-wise.
func (s *Sampler[P]) Filter(p P) error {
	start := time.Now()

	vec := p.Vector()

	indexes, err := s.drawIndexes(len(vec))
	if err != nil {
		s.collector.RecordFilter(time.Since(start), err)
		s.logger.LogFilter(len(vec), 0, err)
		return err
	}

	p.SetVector(project(vec, indexes))

	s.collector.RecordFilter(time.Since(start), nil)
	s.logger.LogFilter(len(vec), len(indexes), nil)

	return nil
}

// FilterCopy clones p, filters the clone in place and returns it. The
// input pattern is left untouched.
func (s *Sampler[P]) FilterCopy(p P) (P, error) {
	clone := p.Clone()
	if err := s.Filter(clone); err != nil {
		var zero P
		return zero, err
	}
	return clone, nil
}

// BatchFilter filters every pattern in ps in place using ONE shared index
// set, sized from the first pattern's vector length.
//
// All patterns must share that reference length; the batch is validated
// before any pattern is mutated, so a failed call leaves every pattern
// untouched.
func (s *Sampler[P]) BatchFilter(ps []P) error {
	start := time.Now()

	err := s.batchFilter(ps)

	s.collector.RecordBatchFilter(len(ps), time.Since(start), err)
	s.logger.LogBatchFilter(len(ps), err)

	return err
}

func (s *Sampler[P]) batchFilter(ps []P) error {
	if len(ps) == 0 {
		return ErrEmptyBatch
	}

	ref := len(ps[0].Vector())
	for i, p := range ps {
		if n := len(p.Vector()); n != ref {
			return &ErrLengthMismatch{Index: i, Expected: ref, Actual: n}
		}
	}

	indexes, err := s.drawIndexes(ref)
	if err != nil {
		return err
	}

	for _, p := range ps {
		p.SetVector(project(p.Vector(), indexes))
	}

	return nil
}

// BatchFilterCopy clones every pattern in ps, batch-filters the clones and
// returns them. The input slice and its patterns are left untouched.
func (s *Sampler[P]) BatchFilterCopy(ps []P) ([]P, error) {
	if len(ps) == 0 {
		return nil, ErrEmptyBatch
	}

	clones := make([]P, len(ps))
	for i, p := range ps {
		clones[i] = p.Clone()
	}

	if err := s.BatchFilter(clones); err != nil {
		return nil, err
	}

	return clones, nil
}

// sampleSize computes the number of features to keep for a vector of
// length n: max(floor(n * fraction), 1). Rounding is toward zero on the
// raw product; a vector is never reduced to zero features.
func (s *Sampler[P]) sampleSize(n int) int {
	amount := int(math.Floor(float64(n) * s.fraction))
	if amount < 1 {
		amount = 1
	}
	return amount
}

// drawIndexes draws a set of unique indexes in [0, maxExclusive) and
// returns them in ascending order.
//
// This is a rejection-sampling loop: duplicate draws are silently
// discarded until the set reaches the computed sample size. Rejections
// pile up as the sample size approaches maxExclusive, which is tolerated
// rather than optimized; inputs are feature-count scaled, not unbounded.
func (s *Sampler[P]) drawIndexes(maxExclusive int) ([]int, error) {
	amount := s.sampleSize(maxExclusive)
	if amount > maxExclusive {
		return nil, &ErrSampleTooLarge{Amount: amount, MaxExclusive: maxExclusive}
	}

	set := indexset.New()
	for set.Len() < amount {
		set.Add(s.src.Intn(maxExclusive))
	}

	indexes := set.AppendTo(make([]int, 0, amount))

	if s.drawHook != nil {
		s.drawHook(indexes)
	}

	return indexes, nil
}

// project returns a new vector whose element i is the source value at the
// i-th smallest selected index. The ascending order makes the output
// canonical regardless of the order indexes were drawn in.
func project(vec []float64, indexes []int) []float64 {
	out := make([]float64, len(indexes))
	for i, idx := range indexes {
		out[i] = vec[idx]
	}
	return out
}

// noopPattern pins the Filter interface onto Sampler at compile time.
type noopPattern struct{ vec []float64 }

func (p *noopPattern) Vector() []float64     { return p.vec }
func (p *noopPattern) SetVector(v []float64) { p.vec = v }
func (p *noopPattern) Clone() *noopPattern {
	return &noopPattern{vec: append([]float64(nil), p.vec...)}
}
