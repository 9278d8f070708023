// Package zapadapter lets a *zap.Logger serve as the atom.Logger and atom.ContextualLogger
// of a Store or a persistence backend.
//
// The contextual variants add the trace_id and span_id of an active OpenTelemetry span
// found in the context, so zap output can be correlated with traces without the slog bridge.
package zapadapter
