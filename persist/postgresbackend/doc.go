// Package postgresbackend provides a PostgreSQL implementation of persist.Backend.
//
// Values are stored as JSONB in a single table keyed by the cell key. Each save
// stamps the row with a fresh revision id and the current time:
//
//	CREATE TABLE atoms (
//	    key        TEXT PRIMARY KEY,
//	    value      JSONB NOT NULL,
//	    revision   UUID NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//
// Schema returns this statement for a configurable table name.
//
// The backend works with pgxpool.Pool, sql.DB (lib/pq) and sqlx.DB:
//
//	backend, err := postgresbackend.NewBackendFromPGXPool(pool, postgresbackend.WithLogger(slog.Default()))
//	cell, err := persist.NewCell(ctx, backend, "settings", Settings{})
//
// Observability follows the atom package: an optional Logger, ContextualLogger,
// MetricsCollector and TracingCollector, all configured with functional options.
package postgresbackend
