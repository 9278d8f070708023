package postgresbackend

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/focused-atoms-go/atom"
)

const (
	logMsgSQLExecuted        = "executed sql for: "
	logMsgOperation          = "postgresbackend operation: "
	logMsgOperationFailed    = "postgresbackend operation failed: "
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logAttrError             = "error"
	logAttrErrorType         = "error_type"
	logAttrQuery             = "query"
	logAttrKey               = "key"
	logAttrFound             = "found"
	logAttrRevision          = "revision"
	logAttrRowsAffected      = "rows_affected"
	logAttrDurationMS        = "duration_ms"

	metricOperationDuration = "postgresbackend_operation_duration_seconds"
	metricOperationsTotal   = "postgresbackend_operations_total"
	metricDatabaseErrors    = "postgresbackend_errors_total"

	spanNamePrefix    = "postgresbackend."
	spanAttrKey       = "key"
	spanAttrTable     = "table"
	spanAttrOperation = "operation"
	spanAttrErrorType = "error_type"
	spanAttrDuration  = "duration_ms"

	operationLoad   = "load"
	operationSave   = "save"
	operationDelete = "delete"

	errorTypeBuildQuery    = "build_query"
	errorTypeDatabaseQuery = "database_query"
	errorTypeDatabaseExec  = "database_exec"
	errorTypeRowScan       = "row_scan"

	statusSuccess = "success"
	statusError   = "error"
)

// operationObserver tracks one Load, Save or Delete from start to finish.
type operationObserver struct {
	backend   *Backend
	operation string
	key       string
	span      atom.SpanContext
	start     time.Time
}

func (b *Backend) startObserving(ctx context.Context, operation, key string) (context.Context, *operationObserver) {
	observer := &operationObserver{
		backend:   b,
		operation: operation,
		key:       key,
		start:     time.Now(),
	}

	if b.tracingCollector != nil {
		ctx, observer.span = b.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{
			spanAttrKey:   key,
			spanAttrTable: b.tableName,
		})
	}

	return ctx, observer
}

func (o *operationObserver) finishSuccess(ctx context.Context, args ...any) {
	duration := time.Since(o.start)
	b := o.backend

	allArgs := []any{logAttrKey, o.key, logAttrDurationMS, toMilliseconds(duration)}
	allArgs = append(allArgs, args...)
	b.logInfo(ctx, logMsgOperation+o.operation, allArgs...)

	b.recordDuration(ctx, duration, map[string]string{spanAttrOperation: o.operation, "status": statusSuccess})
	b.incrementCounter(ctx, metricOperationsTotal, map[string]string{spanAttrOperation: o.operation, "status": statusSuccess})

	o.finishSpan(statusSuccess, map[string]string{
		spanAttrDuration: formatMilliseconds(duration),
	})
}

func (o *operationObserver) finishError(ctx context.Context, errorType string, err error) {
	duration := time.Since(o.start)
	b := o.backend

	b.logError(ctx, logMsgOperationFailed+o.operation, err, logAttrKey, o.key, logAttrErrorType, errorType)

	labels := map[string]string{spanAttrOperation: o.operation, "status": statusError, spanAttrErrorType: errorType}
	b.recordDuration(ctx, duration, labels)
	b.incrementCounter(ctx, metricDatabaseErrors, labels)

	o.finishSpan(statusError, map[string]string{
		spanAttrErrorType: errorType,
		spanAttrDuration:  formatMilliseconds(duration),
	})
}

func (o *operationObserver) finishSpan(status string, attrs map[string]string) {
	if o.backend.tracingCollector == nil || o.span == nil {
		return
	}

	o.span.SetStatus(status)
	o.backend.tracingCollector.FinishSpan(o.span, status, attrs)
}

// logQueryWithDuration logs SQL statements with execution time at debug level if a logger is configured.
func (b *Backend) logQueryWithDuration(ctx context.Context, sqlQuery string, start time.Time) {
	duration := time.Since(start)
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if b.logger != nil {
		b.logger.Debug(logMsgSQLExecuted+b.tableName, args...)
	}

	if b.contextualLogger != nil {
		b.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+b.tableName, args...)
	}
}

func (b *Backend) logInfo(ctx context.Context, msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}

	if b.contextualLogger != nil {
		b.contextualLogger.InfoContext(ctx, msg, args...)
	}
}

func (b *Backend) logWarn(ctx context.Context, msg string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(msg, args...)
	}

	if b.contextualLogger != nil {
		b.contextualLogger.WarnContext(ctx, msg, args...)
	}
}

func (b *Backend) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if b.logger != nil {
		b.logger.Error(msg, allArgs...)
	}

	if b.contextualLogger != nil {
		b.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	}
}

func (b *Backend) recordDuration(ctx context.Context, duration time.Duration, labels map[string]string) {
	if b.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := b.metricsCollector.(atom.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	b.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

func (b *Backend) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if b.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := b.metricsCollector.(atom.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	b.metricsCollector.IncrementCounter(metric, labels)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return strconv.FormatFloat(toMilliseconds(d), 'f', 3, 64)
}
