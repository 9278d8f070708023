package postgresbackend

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
)

const (
	dialectPostgres = "postgres"
	colKey          = "key"
	colValue        = "value"
	colRevision     = "revision"
	colUpdatedAt    = "updated_at"
	castText        = "TEXT"
	castJSONB       = "JSONB"
	castUUID        = "UUID"
)

func (b *Backend) buildSelectQuery(key string) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(b.tableName).
		Select(goqu.Cast(goqu.C(colValue), castText)).
		Where(goqu.C(colKey).Eq(key)).
		Limit(1)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (b *Backend) buildUpsertQuery(key string, value []byte, revision uuid.UUID) (string, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(b.tableName).
		Rows(goqu.Record{
			colKey:       key,
			colValue:     goqu.Cast(goqu.V(string(value)), castJSONB),
			colRevision:  goqu.Cast(goqu.V(revision.String()), castUUID),
			colUpdatedAt: goqu.L("NOW()"),
		}).
		OnConflict(goqu.DoUpdate(colKey, goqu.Record{
			colValue:     goqu.I("excluded." + colValue),
			colRevision:  goqu.I("excluded." + colRevision),
			colUpdatedAt: goqu.I("excluded." + colUpdatedAt),
		}))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (b *Backend) buildDeleteQuery(key string) (string, error) {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(b.tableName).
		Where(goqu.C(colKey).Eq(key))

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}
