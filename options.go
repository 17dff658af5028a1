package subsample

import (
	"log/slog"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	drawHook         func(indexes []int)
}

// Option configures Sampler constructor behavior.
type Option func(*options)

// WithLogger configures structured logging for filter operations.
// Pass nil to keep the default noop logger.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring filter
// operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &subsample.BasicMetricsCollector{}
//	s, _ := subsample.New[*pattern.Pattern](0.4, src, subsample.WithMetricsCollector(metrics))
//	// ... use s ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metricsCollector = mc
		}
	}
}

// WithDrawHook registers a hook observing every drawn index set, in
// ascending order, before it is applied. This feeds provenance recording
// (see the catalog package).
//
// The hook must not retain or mutate the slice.
func WithDrawHook(hook func(indexes []int)) Option {
	return func(o *options) {
		o.drawHook = hook
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
