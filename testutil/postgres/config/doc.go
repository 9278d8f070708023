// Package config provides PostgreSQL connections for the backend tests.
//
// The DSN is read from POSTGRES_DSN and defaults to a local test database.
// Every factory pings the database and skips the calling test if it is not
// reachable, so the suite stays green on machines without PostgreSQL.
package config
