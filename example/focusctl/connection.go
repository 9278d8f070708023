package focusctl

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the "postgres" driver for database/sql and sqlx

	"github.com/AntonStoeckl/focused-atoms-go/atom"
	"github.com/AntonStoeckl/focused-atoms-go/persist"
	"github.com/AntonStoeckl/focused-atoms-go/persist/postgresbackend"
)

// Connection is an open backend plus the means to prepare and release it.
type Connection struct {
	Backend persist.Backend
	exec    func(ctx context.Context, statement string) error
	close   func()
}

// Open connects to the backend named in c.
func Open(ctx context.Context, c Config, logger atom.Logger, contextualLogger atom.ContextualLogger) (*Connection, error) {
	options := []postgresbackend.Option{postgresbackend.WithTableName(c.Table)}
	if logger != nil {
		options = append(options, postgresbackend.WithLogger(logger))
	}

	if contextualLogger != nil {
		options = append(options, postgresbackend.WithContextualLogger(contextualLogger))
	}

	switch c.Backend {
	case BackendMemory:
		return &Connection{
			Backend: persist.NewMemoryBackend(),
			exec:    func(context.Context, string) error { return nil },
			close:   func() {},
		}, nil

	case BackendPGX:
		pool, err := pgxpool.New(ctx, c.DSN)
		if err != nil {
			return nil, err
		}

		backend, err := postgresbackend.NewBackendFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return nil, err
		}

		return &Connection{
			Backend: backend,
			exec: func(ctx context.Context, statement string) error {
				_, err := pool.Exec(ctx, statement)
				return err
			},
			close: pool.Close,
		}, nil

	case BackendSQL:
		db, err := sql.Open("postgres", c.DSN)
		if err != nil {
			return nil, err
		}

		backend, err := postgresbackend.NewBackendFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, err
		}

		return &Connection{
			Backend: backend,
			exec: func(ctx context.Context, statement string) error {
				_, err := db.ExecContext(ctx, statement)
				return err
			},
			close: func() { _ = db.Close() },
		}, nil

	case BackendSQLX:
		db, err := sqlx.Open("postgres", c.DSN)
		if err != nil {
			return nil, err
		}

		backend, err := postgresbackend.NewBackendFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, err
		}

		return &Connection{
			Backend: backend,
			exec: func(ctx context.Context, statement string) error {
				_, err := db.ExecContext(ctx, statement)
				return err
			},
			close: func() { _ = db.Close() },
		}, nil

	default:
		return nil, ErrUnknownBackend
	}
}

// CreateTable creates the table of a postgres backend if it does not exist.
func (c *Connection) CreateTable(ctx context.Context, table string) error {
	return c.exec(ctx, postgresbackend.Schema(table))
}

// Close releases the connection.
func (c *Connection) Close() {
	c.close()
}
