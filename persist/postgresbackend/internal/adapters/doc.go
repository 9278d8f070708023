// Package adapters provides the database adapters of the PostgreSQL backend.
//
// pgx.Pool, sql.DB and sqlx.DB are wrapped behind the common DBAdapter
// interface, so the backend builds its SQL once and runs it on whichever
// connection type the caller already has.
package adapters
