package subsample

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSource is returned when a sampler is constructed without a
	// random source.
	ErrNilSource = errors.New("random source must not be nil")

	// ErrEmptyBatch is returned when a batch operation receives no patterns.
	ErrEmptyBatch = errors.New("batch must not be empty")
)

// ErrInvalidFraction indicates a retain fraction outside the open
// interval (0, 1).
type ErrInvalidFraction struct {
	Fraction float64
}

func (e *ErrInvalidFraction) Error() string {
	return fmt.Sprintf("invalid fraction: %g, must be in (0, 1)", e.Fraction)
}

// ErrSampleTooLarge indicates a requested sample size exceeding the number
// of available positions.
//
// With a valid fraction this is only reachable for zero-length vectors,
// where the minimum sample size of 1 exceeds the 0 available positions.
type ErrSampleTooLarge struct {
	Amount       int
	MaxExclusive int
}

func (e *ErrSampleTooLarge) Error() string {
	return fmt.Sprintf("sample size %d exceeds available positions %d", e.Amount, e.MaxExclusive)
}

// ErrLengthMismatch indicates a batch pattern whose vector length differs
// from the batch's reference length (the first pattern's).
//
// Batch operations validate every pattern before mutating any, so a batch
// that fails with ErrLengthMismatch is left untouched.
type ErrLengthMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch at pattern %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}
