package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-memory Catalog for tests and single-process pipelines.
// Thread-safe.
type Memory struct {
	mu   sync.RWMutex
	runs map[string]map[uuid.UUID]Run
}

var _ Catalog = (*Memory)(nil)

// NewMemory creates a new in-memory catalog.
func NewMemory() *Memory {
	return &Memory{
		runs: make(map[string]map[uuid.UUID]Run),
	}
}

// SaveRun implements Catalog.
func (m *Memory) SaveRun(_ context.Context, run Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID, ok := m.runs[run.Dataset]
	if !ok {
		byID = make(map[uuid.UUID]Run)
		m.runs[run.Dataset] = byID
	}
	byID[run.ID] = run
	return nil
}

// GetRun implements Catalog.
func (m *Memory) GetRun(_ context.Context, dataset string, id uuid.UUID) (Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[dataset][id]
	if !ok {
		return Run{}, ErrRunNotFound
	}
	return run, nil
}

// ListRuns implements Catalog.
func (m *Memory) ListRuns(_ context.Context, dataset string) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]Run, 0, len(m.runs[dataset]))
	for _, run := range m.runs[dataset] {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].ID.String() < runs[j].ID.String()
	})
	return runs, nil
}

// DeleteRun implements Catalog.
func (m *Memory) DeleteRun(_ context.Context, dataset string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.runs[dataset], id)
	return nil
}

// Close implements Catalog.
func (m *Memory) Close() error {
	return nil
}
