package atom

// StoreOption defines a functional option for configuring a Store.
type StoreOption func(*Store) error

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: every top-level read and write with its duration
// Info level: subscriptions and listener notifications
// Warn level: recovered listener panics
// Error level: failed reads and writes.
func WithLogger(logger Logger) StoreOption {
	return func(st *Store) error {
		st.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// It receives the same messages as the Logger, with the operation's context for trace correlation.
func WithContextualLogger(logger ContextualLogger) StoreOption {
	return func(st *Store) error {
		st.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives read/write durations, write counts, error counts and listener fan-out.
func WithMetrics(collector MetricsCollector) StoreOption {
	return func(st *Store) error {
		st.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// One span is created per top-level Read and Write and finished once the result settles.
func WithTracing(collector TracingCollector) StoreOption {
	return func(st *Store) error {
		st.tracingCollector = collector
		return nil
	}
}
