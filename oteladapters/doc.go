// Package oteladapters implements the atom observability interfaces on top of OpenTelemetry.
//
// The adapters plug into atom.Store and postgresbackend.Backend alike:
//
//	st, err := atom.NewStore(
//		atom.WithContextualLogger(oteladapters.NewSlogBridgeLogger("focused-atoms")),
//		atom.WithMetrics(oteladapters.NewMetricsCollector(otel.Meter("focused-atoms"))),
//		atom.WithTracing(oteladapters.NewTracingCollector(otel.Tracer("focused-atoms"))),
//	)
//
// All adapters are safe for concurrent use.
package oteladapters
