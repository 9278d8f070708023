package postgresbackend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/focused-atoms-go/atom"
	"github.com/AntonStoeckl/focused-atoms-go/persist"
	"github.com/AntonStoeckl/focused-atoms-go/persist/postgresbackend/internal/adapters"
)

const defaultTableName = "atoms"

// Backend stores persist.Cell values in a PostgreSQL table.
type Backend struct {
	db               adapters.DBAdapter
	tableName        string
	logger           atom.Logger
	contextualLogger atom.ContextualLogger
	metricsCollector atom.MetricsCollector
	tracingCollector atom.TracingCollector
}

// NewBackendFromPGXPool creates a new Backend using a pgx Pool with optional configuration.
func NewBackendFromPGXPool(db *pgxpool.Pool, options ...Option) (*Backend, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newBackend(adapters.NewPGXAdapter(db), options)
}

// NewBackendFromSQLDB creates a new Backend using a sql.DB with optional configuration.
func NewBackendFromSQLDB(db *sql.DB, options ...Option) (*Backend, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newBackend(adapters.NewSQLAdapter(db), options)
}

// NewBackendFromSQLX creates a new Backend using a sqlx.DB with optional configuration.
func NewBackendFromSQLX(db *sqlx.DB, options ...Option) (*Backend, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newBackend(adapters.NewSQLXAdapter(db), options)
}

func newBackend(db adapters.DBAdapter, options []Option) (*Backend, error) {
	b := &Backend{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// TableName returns the name of the table the Backend reads and writes.
func (b *Backend) TableName() string {
	return b.tableName
}

// Schema returns the CREATE TABLE statement for tableName.
func Schema(tableName string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    revision   UUID NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, tableName)
}

// Load implements persist.Backend.
func (b *Backend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, observer := b.startObserving(ctx, operationLoad, key)

	sqlQuery, buildErr := b.buildSelectQuery(key)
	if buildErr != nil {
		observer.finishError(ctx, errorTypeBuildQuery, buildErr)
		return nil, false, buildErr
	}

	rows, queryErr := b.query(ctx, sqlQuery)
	if queryErr != nil {
		queryErr = errors.Join(ErrQueryingValueFailed, queryErr)
		observer.finishError(ctx, errorTypeDatabaseQuery, queryErr)

		return nil, false, queryErr
	}
	defer b.closeRows(ctx, rows)

	var value []byte
	found := false

	if rows.Next() {
		if scanErr := rows.Scan(&value); scanErr != nil {
			scanErr = errors.Join(ErrScanningDBRowFailed, scanErr)
			observer.finishError(ctx, errorTypeRowScan, scanErr)

			return nil, false, scanErr
		}

		found = true
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		rowsErr = errors.Join(ErrQueryingValueFailed, rowsErr)
		observer.finishError(ctx, errorTypeDatabaseQuery, rowsErr)

		return nil, false, rowsErr
	}

	observer.finishSuccess(ctx, logAttrFound, found)

	return value, found, nil
}

// Save implements persist.Backend. Every save stamps the row with a new revision.
func (b *Backend) Save(ctx context.Context, key string, value []byte) error {
	ctx, observer := b.startObserving(ctx, operationSave, key)
	revision := uuid.New()

	sqlQuery, buildErr := b.buildUpsertQuery(key, value, revision)
	if buildErr != nil {
		observer.finishError(ctx, errorTypeBuildQuery, buildErr)
		return buildErr
	}

	if _, execErr := b.exec(ctx, sqlQuery); execErr != nil {
		execErr = errors.Join(ErrUpsertingValueFailed, execErr)
		observer.finishError(ctx, errorTypeDatabaseExec, execErr)

		return execErr
	}

	observer.finishSuccess(ctx, logAttrRevision, revision.String())

	return nil
}

// Delete implements persist.Backend.
func (b *Backend) Delete(ctx context.Context, key string) error {
	ctx, observer := b.startObserving(ctx, operationDelete, key)

	sqlQuery, buildErr := b.buildDeleteQuery(key)
	if buildErr != nil {
		observer.finishError(ctx, errorTypeBuildQuery, buildErr)
		return buildErr
	}

	result, execErr := b.exec(ctx, sqlQuery)
	if execErr != nil {
		execErr = errors.Join(ErrDeletingValueFailed, execErr)
		observer.finishError(ctx, errorTypeDatabaseExec, execErr)

		return execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		b.logWarn(ctx, logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
	}

	observer.finishSuccess(ctx, logAttrRowsAffected, rowsAffected)

	return nil
}

func (b *Backend) query(ctx context.Context, sqlQuery string) (adapters.DBRows, error) {
	start := time.Now()
	rows, err := b.db.Query(ctx, sqlQuery)
	b.logQueryWithDuration(ctx, sqlQuery, start)

	return rows, err
}

func (b *Backend) exec(ctx context.Context, sqlQuery string) (adapters.DBResult, error) {
	start := time.Now()
	result, err := b.db.Exec(ctx, sqlQuery)
	b.logQueryWithDuration(ctx, sqlQuery, start)

	return result, err
}

// closeRows closes database rows and logs any errors.
func (b *Backend) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		b.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

var _ persist.Backend = (*Backend)(nil)
