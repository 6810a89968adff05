// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/audiencia/internal/logging"
)

// MockOrganizerID is the organizer owning the seeded events.
const MockOrganizerID = "42"

// mockEvent is one seeded row.
type mockEvent struct {
	name        string
	category    string
	subcategory string
	subdomain   string
	status      string
	startOffset time.Duration
}

var mockEvents = []mockEvent{
	{"Alpha Fest", "Música", "Festival", "alpha", "active", 30 * 24 * time.Hour},
	{"Beta Run 10K", "Deportes", "Carrera", "beta", "active", 45 * 24 * time.Hour},
	{"Gamma Stand-Up", "Comedia", "Stand-Up", "gamma", "active", 10 * 24 * time.Hour},
	{"Delta Expo", "Negocios", "Expo", "delta", "inactive", -90 * 24 * time.Hour},
}

// SeedMockData inserts sample events for MockOrganizerID.
// Existing rows for that organizer are replaced so seeding is repeatable.
func (db *DB) SeedMockData(ctx context.Context) error {
	logging.Info().Int("events", len(mockEvents)).Msg("Seeding metadata store with mock events...")

	if err := db.EnsureEventsTable(ctx); err != nil {
		return err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after Commit
	}()

	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE organizer_id = %s", db.cfg.EventsTable, db.placeholder(1))
	if _, err := tx.ExecContext(ctx, deleteQuery, MockOrganizerID); err != nil {
		return fmt.Errorf("failed to clear mock events: %w", err)
	}

	marks := make([]string, 10)
	for i := range marks {
		marks[i] = db.placeholder(i + 1)
	}
	insertQuery := fmt.Sprintf(`INSERT INTO %s
		(event_id, organizer_id, name, category, subcategory, subdomain, organizer_name, email, status, started_at)
		VALUES (%s)`, db.cfg.EventsTable, strings.Join(marks, ", "))

	base := time.Now().UTC().Truncate(24 * time.Hour)
	for _, e := range mockEvents {
		if _, err := tx.ExecContext(ctx, insertQuery,
			uuid.New().String(),
			MockOrganizerID,
			e.name,
			e.category,
			e.subcategory,
			e.subdomain,
			"Demo Producciones",
			"eventos@example.com",
			e.status,
			base.Add(e.startOffset),
		); err != nil {
			return fmt.Errorf("failed to insert mock event %s: %w", e.subdomain, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mock events: %w", err)
	}

	logging.Info().Str("organizer_id", MockOrganizerID).Msg("Mock events seeded")
	return nil
}
