// Package catalog records the provenance of sampling runs: which columns a
// feature-reduction run kept, under which fraction and seed.
//
// A pipeline that filters patterns in one stage and consumes them in a
// later one needs the kept-column set to survive the process boundary; the
// catalog is that record. Backends cover in-memory (tests), embedded
// key-value stores (bbolt, badger) and DynamoDB for shared pipelines.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/subsample/codec"
)

// ErrRunNotFound is returned when a run does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run is the provenance record of one sampling run.
type Run struct {
	ID        uuid.UUID `json:"id"`
	Dataset   string    `json:"dataset"`
	Fraction  float64   `json:"fraction"`
	Seed      *int64    `json:"seed,omitempty"`
	SourceDim int       `json:"source_dim"`
	SampleDim int       `json:"sample_dim"`
	Indexes   []int     `json:"indexes"`
	CreatedAt time.Time `json:"created_at"`
}

// Catalog stores and retrieves sampling-run records.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// SaveRun stores a run record, overwriting any record with the same
	// dataset and ID.
	SaveRun(ctx context.Context, run Run) error

	// GetRun retrieves a run by dataset and ID.
	GetRun(ctx context.Context, dataset string, id uuid.UUID) (Run, error)

	// ListRuns returns all runs for a dataset, ordered by ID.
	ListRuns(ctx context.Context, dataset string) ([]Run, error)

	// DeleteRun removes a run. Deleting a missing run is not an error.
	DeleteRun(ctx context.Context, dataset string, id uuid.UUID) error

	// Close releases backend resources.
	Close() error
}

// BackendType selects a catalog backend in Config.
type BackendType string

const (
	// BackendMemory keeps runs in process memory.
	BackendMemory BackendType = "memory"
	// BackendBolt stores runs in a bbolt file.
	BackendBolt BackendType = "bolt"
	// BackendBadger stores runs in a badger directory.
	BackendBadger BackendType = "badger"
)

// Config selects and configures a catalog backend.
//
// Dynamo is not constructed through Config: it needs a live client and is
// created explicitly with NewDynamo.
type Config struct {
	// Type selects the backend. Default: BackendMemory.
	Type BackendType
	// Path is the bbolt file path or badger directory. Required for
	// bolt/badger.
	Path string
	// Codec encodes run records. Default: codec.Default.
	Codec codec.Codec
}

// Open creates a Catalog for the configured backend.
func Open(cfg Config) (Catalog, error) {
	if cfg.Codec == nil {
		cfg.Codec = codec.Default
	}

	switch cfg.Type {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendBolt:
		if cfg.Path == "" {
			return nil, errors.New("bolt catalog requires a path")
		}
		return NewBolt(cfg.Path, cfg.Codec)
	case BackendBadger:
		if cfg.Path == "" {
			return nil, errors.New("badger catalog requires a path")
		}
		return NewBadger(cfg.Path, cfg.Codec)
	default:
		return nil, fmt.Errorf("unsupported catalog backend: %s", cfg.Type)
	}
}
