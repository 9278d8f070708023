package zapadapter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AntonStoeckl/focused-atoms-go/atom"
	"github.com/AntonStoeckl/focused-atoms-go/persist"
	"github.com/AntonStoeckl/focused-atoms-go/zapadapter"
)

func newObservedLogger(level zapcore.Level) (*zapadapter.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)

	return zapadapter.NewLogger(zap.New(core)), logs
}

func Test_Logger_MapsLevelsAndFields(t *testing.T) {
	// arrange
	logger, logs := newObservedLogger(zapcore.DebugLevel)

	// act
	logger.Debug("atom read", "atom", "counter", "duration_ms", 0.5)
	logger.Info("atom operation: atom subscribed", "atom", "counter")
	logger.Warn("listener panicked", "panic", "boom")
	logger.Error("atom write failed", "error", "rejected")

	// assert
	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	levels := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, level := range levels {
		assert.Equal(t, level, entries[i].Level)
	}

	assert.Equal(t, "counter", entries[0].ContextMap()["atom"])
	assert.InDelta(t, 0.5, entries[0].ContextMap()["duration_ms"], 0)
	assert.Equal(t, "rejected", entries[3].ContextMap()["error"])
}

func Test_Logger_When_LevelIsFiltered_DropsEntries(t *testing.T) {
	// arrange
	logger, logs := newObservedLogger(zapcore.WarnLevel)

	// act
	logger.Debug("atom read")
	logger.InfoContext(context.Background(), "atom operation: listeners notified")
	logger.WarnContext(context.Background(), "listener panicked")

	// assert
	assert.Equal(t, 1, logs.Len())
}

func Test_Logger_ContextVariants_AddSpanIdentifiers(t *testing.T) {
	// arrange
	logger, logs := newObservedLogger(zapcore.DebugLevel)
	traceID := trace.TraceID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	spanID := trace.SpanID{1, 2, 3, 4, 5, 6, 7, 8}
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	// act
	logger.ErrorContext(ctx, "atom write failed", "atom", "counter")
	logger.DebugContext(context.Background(), "atom read")

	// assert
	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, traceID.String(), entries[0].ContextMap()["trace_id"])
	assert.Equal(t, spanID.String(), entries[0].ContextMap()["span_id"])
	assert.Equal(t, "counter", entries[0].ContextMap()["atom"])
	assert.NotContains(t, entries[1].ContextMap(), "trace_id")
}

func Test_Logger_NilLogger_IsNop(t *testing.T) {
	logger := zapadapter.NewLogger(nil)

	assert.NotPanics(t, func() {
		logger.Info("atom operation: atom subscribed")
	})
}

func Test_Logger_WiredIntoStoreAndCell(t *testing.T) {
	// setup
	logger, logs := newObservedLogger(zapcore.DebugLevel)
	st, err := atom.NewStore(atom.WithLogger(logger), atom.WithContextualLogger(logger))
	require.NoError(t, err)

	backend := persist.NewMemoryBackend()
	cell, err := persist.NewCell(context.Background(), backend, "volume", 3, persist.WithLogger(logger))
	require.NoError(t, err)

	// act
	_, writeErr := atom.Write(context.Background(), st, cell.Atom(), atom.Replace(7)).Await(context.Background())
	_, failErr := atom.Write(context.Background(), st, cell.Atom(), atom.TryModify(func(int) (int, error) {
		return 0, errors.New("rejected")
	})).Await(context.Background())

	// assert
	require.NoError(t, writeErr)
	require.Error(t, failErr)

	// observation runs after the write settles, so the entries may trail the Await
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("persisted value saved").Len() == 1 &&
			logs.FilterMessage("atom written").Len() == 2 &&
			logs.FilterMessage("atom write failed").FilterField(zap.String("error", "rejected")).Len() == 2
	}, time.Second, 5*time.Millisecond, "plain and contextual logger both receive every store entry")
}
