// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

// Package testinfra provides container fixtures for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/catalog/...
//
// # PostgreSQL Container
//
// PostgresContainer runs a disposable PostgreSQL server so the catalog can be
// exercised through the pgx driver against a real planner:
//
//	func TestCatalogPostgres(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//
//	    db, err := database.New(&config.DatabaseConfig{Driver: "pgx", DSN: pg.DSN, EventsTable: "events"})
//	    // ...
//	}
//
// Tests are skipped when the Docker daemon is not reachable.
package testinfra
