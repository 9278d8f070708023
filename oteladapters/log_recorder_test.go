package oteladapters_test

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	"go.opentelemetry.io/otel/trace"
)

// recordingLogger is a log.Logger that keeps every emitted record together with the span context it was emitted in.
type recordingLogger struct {
	embedded.Logger

	mu      sync.Mutex
	records []log.Record
	spans   []trace.SpanContext
}

func (l *recordingLogger) Emit(ctx context.Context, record log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
	l.spans = append(l.spans, trace.SpanContextFromContext(ctx))
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func (l *recordingLogger) bodies() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	bodies := make([]string, 0, len(l.records))
	for _, record := range l.records {
		bodies = append(bodies, record.Body().AsString())
	}

	return bodies
}

func (l *recordingLogger) attribute(recordIndex int, key string) (log.Value, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var found log.Value
	ok := false
	l.records[recordIndex].WalkAttributes(func(kv log.KeyValue) bool {
		if kv.Key == key {
			found, ok = kv.Value, true
			return false
		}

		return true
	})

	return found, ok
}

// recordingProvider hands out one shared recordingLogger.
type recordingProvider struct {
	embedded.LoggerProvider

	logger *recordingLogger
}

func (p *recordingProvider) Logger(string, ...log.LoggerOption) log.Logger {
	return p.logger
}
