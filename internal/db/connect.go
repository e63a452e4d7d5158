package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:fieldscore.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/fieldscore?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	dbh, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := dbh.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, dbh, driver); err != nil {
		return nil, err
	}
	return dbh, nil
}

func ensureSchema(ctx context.Context, dbh *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := dbh.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS predictions (
  id TEXT PRIMARY KEY,
  dataset_name TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  file_name TEXT NOT NULL DEFAULT '',
  predictions_json TEXT NOT NULL,
  report_json TEXT NOT NULL DEFAULT '',
  graphs_path TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_predictions_created ON predictions(created_at);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS predictions (
  id TEXT PRIMARY KEY,
  dataset_name TEXT NOT NULL,
  created_at BIGINT NOT NULL,
  file_name TEXT NOT NULL DEFAULT '',
  predictions_json TEXT NOT NULL,
  report_json TEXT NOT NULL DEFAULT '',
  graphs_path TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_predictions_created ON predictions(created_at);
`
