package zapadapter

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/AntonStoeckl/focused-atoms-go/atom"
)

const (
	fieldTraceID = "trace_id"
	fieldSpanID  = "span_id"
)

// Logger implements atom.Logger and atom.ContextualLogger on top of zap's sugared API.
// The alternating key/value args used by the atom packages map directly onto zap's "w" methods.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger wraps logger. A nil logger is replaced by zap.NewNop().
func NewLogger(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Logger{sugar: logger.Sugar()}
}

func (l *Logger) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Debugw(msg, withSpan(ctx, args)...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Infow(msg, withSpan(ctx, args)...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Warnw(msg, withSpan(ctx, args)...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Errorw(msg, withSpan(ctx, args)...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

func withSpan(ctx context.Context, args []any) []any {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return args
	}

	return append(args[:len(args):len(args)],
		fieldTraceID, spanCtx.TraceID().String(),
		fieldSpanID, spanCtx.SpanID().String(),
	)
}

var (
	_ atom.Logger           = (*Logger)(nil)
	_ atom.ContextualLogger = (*Logger)(nil)
)
