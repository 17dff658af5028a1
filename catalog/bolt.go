package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/subsample/codec"
	"go.etcd.io/bbolt"
)

const runsBucket = "runs"

// Bolt is a Catalog backed by a bbolt file. Runs are stored codec-encoded
// in a single bucket under "<dataset>/<id>" keys.
type Bolt struct {
	db    *bbolt.DB
	codec codec.Codec
}

var _ Catalog = (*Bolt)(nil)

// NewBolt opens (or creates) a bbolt-backed catalog at dbPath.
func NewBolt(dbPath string, c codec.Codec) (*Bolt, error) {
	if c == nil {
		c = codec.Default
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bolt catalog at %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}

	return &Bolt{db: db, codec: c}, nil
}

func runKey(dataset string, id uuid.UUID) []byte {
	return []byte(dataset + "/" + id.String())
}

// SaveRun implements Catalog.
func (b *Bolt) SaveRun(_ context.Context, run Run) error {
	data, err := b.codec.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(runsBucket)).Put(runKey(run.Dataset, run.ID), data)
	})
}

// GetRun implements Catalog.
func (b *Bolt) GetRun(_ context.Context, dataset string, id uuid.UUID) (Run, error) {
	var run Run

	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(runsBucket)).Get(runKey(dataset, id))
		if data == nil {
			return ErrRunNotFound
		}
		return b.codec.Unmarshal(data, &run)
	})
	if err != nil {
		return Run{}, err
	}

	return run, nil
}

// ListRuns implements Catalog.
func (b *Bolt) ListRuns(_ context.Context, dataset string) ([]Run, error) {
	var runs []Run
	prefix := []byte(dataset + "/")

	err := b.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(runsBucket)).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var run Run
			if err := b.codec.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("decode run %s: %w", string(k), err)
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}

// DeleteRun implements Catalog.
func (b *Bolt) DeleteRun(_ context.Context, dataset string, id uuid.UUID) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(runsBucket)).Delete(runKey(dataset, id))
	})
}

// Close implements Catalog.
func (b *Bolt) Close() error {
	return b.db.Close()
}
