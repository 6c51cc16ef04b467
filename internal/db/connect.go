package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // driver: mysql
	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
	// DriverNone disables the access log.
	DriverNone Driver = "none"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:results.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/results?sslmode=disable"
		}
	case DriverMySQL:
		drvName = "mysql"
		if dsn == "" {
			dsn = "root@tcp(localhost:3306)/results?parseTime=true&multiStatements=true"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	case DriverMySQL:
		schema = schemaMySQL
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Placeholder returns the n-th (1-based) bind parameter for the driver.
func Placeholder(driver Driver, n int) string {
	if driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS access_log (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,        -- uuid
  typ TEXT NOT NULL,              -- gate_check | list | fetch
  file TEXT NOT NULL DEFAULT '',
  success INTEGER NOT NULL,
  viewer TEXT NOT NULL DEFAULT '',   -- token subject
  remote_addr TEXT NOT NULL DEFAULT '',
  request_id TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS access_log (
  seq BIGSERIAL PRIMARY KEY,
  id TEXT NOT NULL UNIQUE,
  typ TEXT NOT NULL,
  file TEXT NOT NULL DEFAULT '',
  success BOOLEAN NOT NULL,
  viewer TEXT NOT NULL DEFAULT '',
  remote_addr TEXT NOT NULL DEFAULT '',
  request_id TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);
`

const schemaMySQL = `
CREATE TABLE IF NOT EXISTS access_log (
  seq BIGINT AUTO_INCREMENT PRIMARY KEY,
  id VARCHAR(36) NOT NULL UNIQUE,
  typ VARCHAR(32) NOT NULL,
  file VARCHAR(255) NOT NULL DEFAULT '',
  success BOOLEAN NOT NULL,
  viewer VARCHAR(64) NOT NULL DEFAULT '',
  remote_addr VARCHAR(64) NOT NULL DEFAULT '',
  request_id VARCHAR(128) NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);
`
