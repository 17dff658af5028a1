package subsample

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordFilter is called after each single-pattern filter operation
	// (in place or copy). duration is the total time taken, err is nil if
	// successful.
	RecordFilter(duration time.Duration, err error)

	// RecordBatchFilter is called after each batch filter operation.
	// count is the number of patterns in the batch, duration is the total
	// time taken, err is nil if successful.
	RecordBatchFilter(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFilter(time.Duration, error)           {}
func (NoopMetricsCollector) RecordBatchFilter(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FilterCount           atomic.Int64
	FilterErrors          atomic.Int64
	FilterTotalNanos      atomic.Int64
	BatchFilterCount      atomic.Int64
	BatchFilterErrors     atomic.Int64
	BatchFilterItems      atomic.Int64
	BatchFilterTotalNanos atomic.Int64
}

// RecordFilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFilter(duration time.Duration, err error) {
	b.FilterCount.Add(1)
	b.FilterTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FilterErrors.Add(1)
	}
}

// RecordBatchFilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchFilter(count int, duration time.Duration, err error) {
	b.BatchFilterCount.Add(1)
	b.BatchFilterItems.Add(int64(count))
	b.BatchFilterTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BatchFilterErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FilterCount:         b.FilterCount.Load(),
		FilterErrors:        b.FilterErrors.Load(),
		FilterAvgNanos:      b.getAvgFilterNanos(),
		BatchFilterCount:    b.BatchFilterCount.Load(),
		BatchFilterErrors:   b.BatchFilterErrors.Load(),
		BatchFilterItems:    b.BatchFilterItems.Load(),
		BatchFilterAvgNanos: b.getAvgBatchFilterNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgFilterNanos() int64 {
	count := b.FilterCount.Load()
	if count == 0 {
		return 0
	}
	return b.FilterTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgBatchFilterNanos() int64 {
	count := b.BatchFilterCount.Load()
	if count == 0 {
		return 0
	}
	return b.BatchFilterTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FilterCount         int64
	FilterErrors        int64
	FilterAvgNanos      int64
	BatchFilterCount    int64
	BatchFilterErrors   int64
	BatchFilterItems    int64
	BatchFilterAvgNanos int64
}
