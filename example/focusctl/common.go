package focusctl

import "errors"

// ErrInvalidPath is returned when a path cannot be parsed.
var ErrInvalidPath = errors.New("invalid path")

// ErrPathNotFound is returned when a path addresses nothing in the document.
var ErrPathNotFound = errors.New("path not found")

// ErrNotANumber is returned when inc is applied to a value that is not a number.
var ErrNotANumber = errors.New("focused value is not a number")

// ErrUnknownBackend is returned when the configured backend is not memory, pgx, sql or sqlx.
var ErrUnknownBackend = errors.New("unknown backend")

// ErrUnknownOutputFormat is returned when the configured output format is not json or yaml.
var ErrUnknownOutputFormat = errors.New("unknown output format")

// ErrMissingDSN is returned when a postgres backend is configured without a DSN.
var ErrMissingDSN = errors.New("postgres backend needs a dsn")
