package db

import (
	stdsql "database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported values for the driver name passed to Open.
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite"
)

// Open connects to the database at dsn. postgres uses lib/pq, pgx uses the
// pgx stdlib adapter and sqlite uses the pure Go modernc driver.
func Open(driverName, dsn string) (*sql.Driver, error) {
	switch driverName {
	case DriverPostgres, "":
		drv, err := sql.Open(dialect.Postgres, dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return drv, nil
	case DriverPgx:
		db, err := stdsql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open pgx: %w", err)
		}
		return sql.OpenDB(dialect.Postgres, db), nil
	case DriverSQLite:
		db, err := stdsql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// An in-memory database lives on a single connection.
		db.SetMaxOpenConns(1)
		return sql.OpenDB(dialect.SQLite, db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}
}
