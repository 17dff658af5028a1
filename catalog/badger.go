package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/hupe1980/subsample/codec"
)

const badgerRunPrefix = "r:"

// Badger is a Catalog backed by a badger directory. Runs are stored
// codec-encoded under "r:<dataset>:<id>" keys.
type Badger struct {
	db    *badger.DB
	codec codec.Codec
}

var _ Catalog = (*Badger)(nil)

// NewBadger opens (or creates) a badger-backed catalog at dir.
func NewBadger(dir string, c codec.Codec) (*Badger, error) {
	if c == nil {
		c = codec.Default
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable badger's own logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger catalog at %s: %w", dir, err)
	}

	return &Badger{db: db, codec: c}, nil
}

func badgerRunKey(dataset string, id uuid.UUID) []byte {
	return []byte(badgerRunPrefix + dataset + ":" + id.String())
}

// SaveRun implements Catalog.
func (b *Badger) SaveRun(_ context.Context, run Run) error {
	data, err := b.codec.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerRunKey(run.Dataset, run.ID), data)
	})
}

// GetRun implements Catalog.
func (b *Badger) GetRun(_ context.Context, dataset string, id uuid.UUID) (Run, error) {
	var run Run

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerRunKey(dataset, id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return ErrRunNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return b.codec.Unmarshal(val, &run)
		})
	})
	if err != nil {
		return Run{}, err
	}

	return run, nil
}

// ListRuns implements Catalog.
func (b *Badger) ListRuns(_ context.Context, dataset string) ([]Run, error) {
	var runs []Run
	prefix := []byte(badgerRunPrefix + dataset + ":")

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var run Run
				if err := b.codec.Unmarshal(val, &run); err != nil {
					return fmt.Errorf("decode run %s: %w", string(it.Item().Key()), err)
				}
				runs = append(runs, run)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}

// DeleteRun implements Catalog.
func (b *Badger) DeleteRun(_ context.Context, dataset string, id uuid.UUID) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerRunKey(dataset, id))
	})
}

// Close implements Catalog.
func (b *Badger) Close() error {
	return b.db.Close()
}
