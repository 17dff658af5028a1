package subsample

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with subsample-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDataset adds a dataset field to the logger.
func (l *Logger) WithDataset(dataset string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dataset", dataset),
	}
}

// WithFraction adds the retain fraction field to the logger.
func (l *Logger) WithFraction(fraction float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("fraction", fraction),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogFilter logs a single-pattern filter operation.
func (l *Logger) LogFilter(dimension, sampled int, err error) {
	if err != nil {
		l.Error("filter failed",
			"dimension", dimension,
			"error", err,
		)
	} else {
		l.Debug("filter completed",
			"dimension", dimension,
			"sampled", sampled,
		)
	}
}

// LogBatchFilter logs a batch filter operation.
func (l *Logger) LogBatchFilter(count int, err error) {
	if err != nil {
		l.Error("batch filter failed",
			"count", count,
			"error", err,
		)
	} else {
		l.Debug("batch filter completed",
			"count", count,
		)
	}
}
