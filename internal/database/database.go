// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tomtom215/audiencia/internal/config"
	"github.com/tomtom215/audiencia/internal/logging"
)

// Driver names registered with database/sql.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "pgx"
)

// pingTimeout bounds the connectivity check performed by New.
const pingTimeout = 5 * time.Second

// DB wraps the metadata store connection pool
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the metadata store and verifies connectivity.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverDuckDB
	}

	if driver == DriverDuckDB {
		if err := ensureParentDir(cfg.DSN); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	db := &DB{conn: conn, cfg: cfg}
	db.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	logging.Info().
		Str("driver", driver).
		Str("events_table", cfg.EventsTable).
		Msg("Metadata store connected")

	return db, nil
}

// ensureParentDir creates the directory holding a DuckDB file.
func ensureParentDir(dsn string) error {
	path := strings.SplitN(dsn, "?", 2)[0]
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() {
	maxOpen := db.cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 4
	}
	db.conn.SetMaxOpenConns(maxOpen)
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Driver returns the database/sql driver name in use.
func (db *DB) Driver() string {
	if db.cfg.Driver == "" {
		return DriverDuckDB
	}
	return db.cfg.Driver
}

// Conn returns the underlying connection pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// QueryContext runs a read query against the metadata store.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, query, args...)
}

// Ping checks connectivity. Used by the readiness probe.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// placeholder returns the bind parameter marker for position n (1-based).
// DuckDB accepts both styles; PostgreSQL requires $n.
func (db *DB) placeholder(n int) string {
	if db.Driver() == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
