// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package database

import (
	"context"
	"fmt"
)

// EnsureEventsTable creates the events relation if it does not exist.
// The column set mirrors the production warehouse view.
func (db *DB) EnsureEventsTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		event_id       VARCHAR PRIMARY KEY,
		organizer_id   VARCHAR NOT NULL,
		name           VARCHAR NOT NULL,
		category       VARCHAR,
		subcategory    VARCHAR,
		subdomain      VARCHAR NOT NULL,
		organizer_name VARCHAR,
		email          VARCHAR,
		status         VARCHAR NOT NULL DEFAULT 'active',
		started_at     TIMESTAMP
	)`, db.cfg.EventsTable)

	if _, err := db.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create %s: %w", db.cfg.EventsTable, err)
	}
	return nil
}
