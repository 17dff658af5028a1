// Package pattern provides the concrete feature-vector container the sampler
// operates on.
//
// A Pattern is a named, mutable float64 vector. The sampler only relies on the
// Vector/SetVector/Clone contract, so callers with their own vector types can
// skip this package entirely.
package pattern

import (
	"fmt"
	"slices"

	"github.com/hupe1980/subsample/codec"
)

// Pattern is a named numeric feature vector.
//
// The zero value is an empty, unnamed pattern. Pattern is not safe for
// concurrent mutation.
type Pattern struct {
	name   string
	vector []float64
}

// New creates a new Pattern. The vector is used as-is, not copied.
func New(name string, vector []float64) *Pattern {
	return &Pattern{name: name, vector: vector}
}

// Name returns the pattern's name.
func (p *Pattern) Name() string { return p.name }

// Vector returns the pattern's feature vector without copying.
//
// The returned slice is the pattern's backing storage; callers that need an
// independent copy should Clone first.
func (p *Pattern) Vector() []float64 { return p.vector }

// SetVector replaces the pattern's feature vector wholesale.
func (p *Pattern) SetVector(vector []float64) { p.vector = vector }

// Dim returns the number of features.
func (p *Pattern) Dim() int { return len(p.vector) }

// Clone returns a deep copy with independent vector storage.
func (p *Pattern) Clone() *Pattern {
	return &Pattern{
		name:   p.name,
		vector: slices.Clone(p.vector),
	}
}

// Equal reports whether both patterns have the same name and identical
// vector values.
func (p *Pattern) Equal(other *Pattern) bool {
	if other == nil {
		return false
	}
	return p.name == other.name && slices.Equal(p.vector, other.vector)
}

// String implements fmt.Stringer.
func (p *Pattern) String() string {
	return fmt.Sprintf("pattern(%s, dim=%d)", p.name, len(p.vector))
}

// patternJSON is the wire shape for persisted patterns.
type patternJSON struct {
	Name   string    `json:"name"`
	Vector []float64 `json:"vector"`
}

// MarshalJSON implements json.Marshaler.
func (p *Pattern) MarshalJSON() ([]byte, error) {
	return codec.Default.Marshal(patternJSON{Name: p.name, Vector: p.vector})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Pattern) UnmarshalJSON(data []byte) error {
	var pj patternJSON
	if err := codec.Default.Unmarshal(data, &pj); err != nil {
		return err
	}
	p.name = pj.Name
	p.vector = pj.Vector
	return nil
}
