// Package testdoubles provides spies for the atom observability interfaces.
//
// The spies record calls so tests can assert on the logs, metrics and spans
// produced by atom.Store and the storage backends:
//   - LogHandlerSpy: a slog.Handler, use it with slog.New to obtain an atom.Logger
//   - ContextualLoggerSpy: an atom.ContextualLogger
//   - MetricsCollectorSpy: an atom.ContextualMetricsCollector
//   - TracingCollectorSpy: an atom.TracingCollector
package testdoubles
