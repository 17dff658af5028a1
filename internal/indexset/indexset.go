// Package indexset provides the ordered set of unique feature positions the
// sampler draws into.
package indexset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is an ordered set of unique non-negative ints backed by a roaring
// bitmap. Iteration order is ascending. Not safe for concurrent use.
type Set struct {
	rb *roaring.Bitmap
}

// New creates a new empty Set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Add inserts i into the set. Duplicate inserts are no-ops.
func (s *Set) Add(i int) {
	s.rb.Add(uint32(i))
}

// Contains reports whether i is in the set.
func (s *Set) Contains(i int) bool {
	return s.rb.Contains(uint32(i))
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	return int(s.rb.GetCardinality())
}

// All returns an iterator over the set in ascending order.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// AppendTo appends the set's elements to dst in ascending order and returns
// the extended slice.
func (s *Set) AppendTo(dst []int) []int {
	if cap(dst)-len(dst) < s.Len() {
		grown := make([]int, len(dst), len(dst)+s.Len())
		copy(grown, dst)
		dst = grown
	}
	for i := range s.All() {
		dst = append(dst, i)
	}
	return dst
}
