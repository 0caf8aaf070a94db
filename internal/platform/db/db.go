package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Driver names the SQL backend. Callers import the matching database/sql
// driver (modernc.org/sqlite or pgx/v5/stdlib).
type Driver string

const (
	SQLite   Driver = "sqlite"
	Postgres Driver = "postgres"
)

func ParseDriver(s string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(s))); d {
	case SQLite, Postgres:
		return d, nil
	case "":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unknown database driver %q (want sqlite or postgres)", s)
	}
}

// Connect opens the configured backend: a file path for SQLite, a URL for Postgres.
func Connect(driver Driver, sqlitePath, databaseURL string) (*sql.DB, error) {
	if driver == Postgres {
		if strings.TrimSpace(databaseURL) == "" {
			return nil, fmt.Errorf("connect: DATABASE_URL is required for driver %s", driver)
		}
		return Open(databaseURL)
	}
	return OpenSQLite(sqlitePath)
}

func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}

func OpenSQLite(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	// Serialize writers; SQLite allows one at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
