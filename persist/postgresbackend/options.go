package postgresbackend

import (
	"github.com/AntonStoeckl/focused-atoms-go/atom"
)

// Option defines a functional option for configuring Backend.
type Option func(*Backend) error

// WithTableName sets the table name for the Backend.
func WithTableName(tableName string) Option {
	return func(b *Backend) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		b.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Backend.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: saved and deleted keys with durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger atom.Logger) Option {
	return func(b *Backend) error {
		b.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Backend.
// It receives the same messages as the Logger, with the operation's context for trace correlation.
func WithContextualLogger(logger atom.ContextualLogger) Option {
	return func(b *Backend) error {
		b.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Backend.
// It receives load/save/delete durations and database error counts.
func WithMetrics(collector atom.MetricsCollector) Option {
	return func(b *Backend) error {
		b.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Backend.
// One span is created per Load, Save and Delete.
func WithTracing(collector atom.TracingCollector) Option {
	return func(b *Backend) error {
		b.tracingCollector = collector
		return nil
	}
}
