package atom

import (
	"context"
	"math"
	"strconv"
	"time"
)

const (
	logMsgRead              = "atom read"
	logMsgWritten           = "atom written"
	logMsgReadFailed        = "atom read failed"
	logMsgWriteFailed       = "atom write failed"
	logMsgSubscribed        = "atom subscribed"
	logMsgUnsubscribed      = "atom unsubscribed"
	logMsgListenersNotified = "listeners notified"
	logMsgListenerPanicked  = "listener panicked"
	logMsgOperation         = "atom operation: "
	logAttrAtom             = "atom"
	logAttrStoreID          = "store_id"
	logAttrError            = "error"
	logAttrDurationMS       = "duration_ms"
	logAttrListenerCount    = "listener_count"
	logAttrPanic            = "panic"

	metricReadDuration      = "atom_read_duration_seconds"
	metricWriteDuration     = "atom_write_duration_seconds"
	metricWritesTotal       = "atom_writes_total"
	metricErrorsTotal       = "atom_errors_total"
	metricListenersNotified = "atom_listeners_notified"

	spanNameRead      = "atom.read"
	spanNameWrite     = "atom.write"
	spanAttrAtom      = "atom"
	spanAttrStoreID   = "store_id"
	spanAttrOperation = "operation"
	spanAttrDuration  = "duration_ms"

	operationRead  = "read"
	operationWrite = "write"

	statusSuccess = "success"
	statusError   = "error"
)

// observe records logs, metrics and the span outcome of a settled top-level operation.
func (st *Store) observe(
	ctx context.Context,
	span SpanContext,
	operation string,
	label string,
	start time.Time,
	err error,
) {
	duration := time.Since(start)

	if err != nil {
		message := logMsgWriteFailed
		if operation == operationRead {
			message = logMsgReadFailed
		}

		st.logError(ctx, message, err, logAttrAtom, label, logAttrDurationMS, toMilliseconds(duration))
		st.recordCounter(ctx, metricErrorsTotal, operation, label, statusError)
		st.finishTraceSpan(span, statusError, map[string]string{
			spanAttrDuration: formatMilliseconds(duration),
		})

		return
	}

	metric, message := metricReadDuration, logMsgRead
	if operation == operationWrite {
		metric, message = metricWriteDuration, logMsgWritten
		st.recordCounter(ctx, metricWritesTotal, operation, label, statusSuccess)
	}

	st.logDebug(ctx, message, logAttrAtom, label, logAttrDurationMS, toMilliseconds(duration))
	st.recordDuration(ctx, metric, duration, operation, label)
	st.finishTraceSpan(span, statusSuccess, map[string]string{
		spanAttrDuration: formatMilliseconds(duration),
	})
}

// logDebug logs at debug level to whichever loggers are configured.
func (st *Store) logDebug(ctx context.Context, msg string, args ...any) {
	args = append(args, logAttrStoreID, st.id.String())

	if st.logger != nil {
		st.logger.Debug(msg, args...)
	}

	if st.contextualLogger != nil {
		st.contextualLogger.DebugContext(ctx, msg, args...)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (st *Store) logOperation(action string, args ...any) {
	args = append(args, logAttrStoreID, st.id.String())

	if st.logger != nil {
		st.logger.Info(logMsgOperation+action, args...)
	}

	if st.contextualLogger != nil {
		st.contextualLogger.InfoContext(context.Background(), logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical issues at warn level if a logger is configured.
func (st *Store) logWarn(msg string, args ...any) {
	args = append(args, logAttrStoreID, st.id.String())

	if st.logger != nil {
		st.logger.Warn(msg, args...)
	}

	if st.contextualLogger != nil {
		st.contextualLogger.WarnContext(context.Background(), msg, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (st *Store) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)
	allArgs = append(allArgs, logAttrStoreID, st.id.String())

	if st.logger != nil {
		st.logger.Error(msg, allArgs...)
	}

	if st.contextualLogger != nil {
		st.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	}
}

func (st *Store) labels(operation, label string) map[string]string {
	return map[string]string{
		spanAttrOperation: operation,
		spanAttrAtom:      label,
	}
}

// recordDuration records duration metrics with context if the collector supports it.
func (st *Store) recordDuration(ctx context.Context, metric string, duration time.Duration, operation, label string) {
	if st.metricsCollector == nil {
		return
	}

	labels := st.labels(operation, label)

	if contextualCollector, ok := st.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	st.metricsCollector.RecordDuration(metric, duration, labels)
}

// recordCounter increments a counter with context if the collector supports it.
func (st *Store) recordCounter(ctx context.Context, metric, operation, label, status string) {
	if st.metricsCollector == nil {
		return
	}

	labels := st.labels(operation, label)
	labels["status"] = status

	if contextualCollector, ok := st.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	st.metricsCollector.IncrementCounter(metric, labels)
}

// recordValueMetrics records a gauge value if the metrics collector is configured.
func (st *Store) recordValueMetrics(metric string, value float64, label string) {
	if st.metricsCollector == nil {
		return
	}

	st.metricsCollector.RecordValue(metric, value, map[string]string{spanAttrAtom: label})
}

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (st *Store) startTraceSpan(ctx context.Context, name, label string) (context.Context, SpanContext) {
	if st.tracingCollector == nil {
		return ctx, nil
	}

	return st.tracingCollector.StartSpan(ctx, name, map[string]string{
		spanAttrAtom:    label,
		spanAttrStoreID: st.id.String(),
	})
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (st *Store) finishTraceSpan(span SpanContext, status string, attrs map[string]string) {
	if st.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(status)
	st.tracingCollector.FinishSpan(span, status, attrs)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return strconv.FormatFloat(toMilliseconds(d), 'f', 3, 64)
}
