package postgresbackend

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyTableName = errors.New("empty table name supplied")
var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrQueryingValueFailed = errors.New("querying value failed")
var ErrScanningDBRowFailed = errors.New("scanning db row failed")
var ErrUpsertingValueFailed = errors.New("upserting value failed")
var ErrDeletingValueFailed = errors.New("deleting value failed")
