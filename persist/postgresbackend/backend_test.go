package postgresbackend_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/focused-atoms-go/atom"
	"github.com/AntonStoeckl/focused-atoms-go/focus"
	"github.com/AntonStoeckl/focused-atoms-go/optic"
	"github.com/AntonStoeckl/focused-atoms-go/persist"
	"github.com/AntonStoeckl/focused-atoms-go/persist/postgresbackend"
	. "github.com/AntonStoeckl/focused-atoms-go/testutil/postgres/config" //nolint:revive
)

const testTableName = "atoms_test"

func Test_NewBackend_When_ConnectionIsNil_ReturnsErrNilDatabaseConnection(t *testing.T) {
	_, pgxErr := postgresbackend.NewBackendFromPGXPool(nil)
	_, sqlErr := postgresbackend.NewBackendFromSQLDB(nil)
	_, sqlxErr := postgresbackend.NewBackendFromSQLX(nil)

	assert.ErrorIs(t, pgxErr, postgresbackend.ErrNilDatabaseConnection)
	assert.ErrorIs(t, sqlErr, postgresbackend.ErrNilDatabaseConnection)
	assert.ErrorIs(t, sqlxErr, postgresbackend.ErrNilDatabaseConnection)
}

func Test_NewBackend_When_TableNameIsEmpty_ReturnsErrEmptyTableName(t *testing.T) {
	// arrange
	db, err := sql.Open("postgres", PostgresDSN())
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// act
	_, optionErr := postgresbackend.NewBackendFromSQLDB(db, postgresbackend.WithTableName(""))
	backend, defaultErr := postgresbackend.NewBackendFromSQLDB(db)

	// assert
	assert.ErrorIs(t, optionErr, postgresbackend.ErrEmptyTableName)
	require.NoError(t, defaultErr)
	assert.Equal(t, "atoms", backend.TableName())
}

func Test_Schema_NamesTheTable(t *testing.T) {
	schema := postgresbackend.Schema("cells")

	assert.Contains(t, schema, `CREATE TABLE IF NOT EXISTS "cells"`)
	assert.Contains(t, schema, "value      JSONB NOT NULL")
}

type backendFactory struct {
	name  string
	build func(t *testing.T) *postgresbackend.Backend
}

func backendFactories() []backendFactory {
	return []backendFactory{
		{name: "pgx pool", build: func(t *testing.T) *postgresbackend.Backend {
			pool := PostgresPGXPool(t)
			RecreateTable(t, PostgresSQLDB(t), testTableName, postgresbackend.Schema(testTableName))
			backend, err := postgresbackend.NewBackendFromPGXPool(pool, postgresbackend.WithTableName(testTableName))
			require.NoError(t, err)
			return backend
		}},
		{name: "sql db", build: func(t *testing.T) *postgresbackend.Backend {
			db := PostgresSQLDB(t)
			RecreateTable(t, db, testTableName, postgresbackend.Schema(testTableName))
			backend, err := postgresbackend.NewBackendFromSQLDB(db, postgresbackend.WithTableName(testTableName))
			require.NoError(t, err)
			return backend
		}},
		{name: "sqlx db", build: func(t *testing.T) *postgresbackend.Backend {
			db := PostgresSQLX(t)
			RecreateTable(t, db.DB, testTableName, postgresbackend.Schema(testTableName))
			backend, err := postgresbackend.NewBackendFromSQLX(db, postgresbackend.WithTableName(testTableName))
			require.NoError(t, err)
			return backend
		}},
	}
}

func Test_Backend_SaveLoadDelete_RoundTrips(t *testing.T) {
	for _, factory := range backendFactories() {
		t.Run(factory.name, func(t *testing.T) {
			// setup
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			backend := factory.build(t)

			// arrange
			key := uuid.NewString()

			// act
			_, foundBefore, loadBeforeErr := backend.Load(ctx, key)
			saveErr := backend.Save(ctx, key, []byte(`{"theme":"dark"}`))
			overwriteErr := backend.Save(ctx, key, []byte(`{"theme":"light"}`))
			value, foundAfter, loadAfterErr := backend.Load(ctx, key)
			deleteErr := backend.Delete(ctx, key)
			_, foundDeleted, loadDeletedErr := backend.Load(ctx, key)

			// assert
			require.NoError(t, loadBeforeErr)
			require.NoError(t, saveErr)
			require.NoError(t, overwriteErr)
			require.NoError(t, loadAfterErr)
			require.NoError(t, deleteErr)
			require.NoError(t, loadDeletedErr)
			assert.False(t, foundBefore)
			assert.True(t, foundAfter)
			assert.JSONEq(t, `{"theme":"light"}`, string(value))
			assert.False(t, foundDeleted)
		})
	}
}

type profile struct {
	Name   string   `json:"name"`
	Emails []string `json:"emails"`
}

func Test_Backend_AsCellBackend_PersistsFocusedWrites(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	backend := backendFactories()[0].build(t)

	st, err := atom.NewStore()
	require.NoError(t, err)

	// arrange
	key := uuid.NewString()
	require.NoError(t, backend.Save(ctx, key, []byte(`{"name":"ada","emails":["ada@example.com"]}`)))

	cell, err := persist.NewCell(ctx, backend, key, profile{})
	require.NoError(t, err)
	name, err := focus.Lens(cell.Atom(), func(o optic.Optic[profile, profile]) optic.Optic[profile, string] {
		return optic.Prop(o, func(p profile) string { return p.Name }, func(p profile, n string) profile { p.Name = n; return p })
	})
	require.NoError(t, err)

	// act
	_, writeErr := atom.Write(ctx, st, name, atom.Modify(func(n string) string { return n + " lovelace" })).Await(ctx)

	// assert
	require.NoError(t, writeErr)
	value, found, loadErr := backend.Load(ctx, key)
	require.NoError(t, loadErr)
	require.True(t, found)
	assert.JSONEq(t, `{"name":"ada lovelace","emails":["ada@example.com"]}`, string(value))
}
