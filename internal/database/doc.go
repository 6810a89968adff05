// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

// Package database opens the event metadata store.
//
// # Overview
//
// The store is reached through database/sql with one of two drivers,
// selected by DATABASE_DRIVER:
//   - duckdb (default): github.com/duckdb/duckdb-go/v2, a local file or ":memory:"
//   - pgx: github.com/jackc/pgx/v5/stdlib against PostgreSQL
//
// Callers only need QueryContext; *DB satisfies catalog.Querier. Connection
// pooling and transparent reconnects are handled by database/sql.
//
// # Development Data
//
// EnsureEventsTable creates the events relation when it is missing and
// SeedMockData inserts a small set of sample events so the API can be run
// locally without access to the production warehouse.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	events := catalog.New(db, cfg.Database.EventsTable)
package database
