package config

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const (
	defaultMaxConnections = 10
	defaultConnectTimeout = 2 * time.Second
)

// PostgresPGXPool opens a pgxpool.Pool, skipping t if the database is unreachable.
func PostgresPGXPool(t testing.TB) *pgxpool.Pool {
	t.Helper()

	dbConfig, err := pgxpool.ParseConfig(PostgresDSN())
	if err != nil {
		t.Fatalf("failed to parse postgres DSN: %v", err)
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		t.Skipf("postgres not available: %v", pingErr)
	}

	t.Cleanup(pool.Close)

	return pool
}

// PostgresSQLDB opens a sql.DB with lib/pq, skipping t if the database is unreachable.
func PostgresSQLDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("postgres", PostgresDSN())
	if err != nil {
		t.Fatalf("failed to open postgres connection: %v", err)
	}

	db.SetMaxOpenConns(defaultMaxConnections)

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		t.Skipf("postgres not available: %v", pingErr)
	}

	t.Cleanup(func() { _ = db.Close() })

	return db
}

// PostgresSQLX wraps PostgresSQLDB in a sqlx.DB.
func PostgresSQLX(t testing.TB) *sqlx.DB {
	t.Helper()

	return sqlx.NewDb(PostgresSQLDB(t), "postgres")
}

// RecreateTable drops and creates a table using the given CREATE TABLE statement.
func RecreateTable(t testing.TB, db *sql.DB, tableName, schema string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS "`+tableName+`"`); err != nil {
		t.Fatalf("failed to drop table %s: %v", tableName, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		t.Fatalf("failed to create table %s: %v", tableName, err)
	}
}
