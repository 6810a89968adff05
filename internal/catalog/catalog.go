// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/audiencia/internal/database"
	"github.com/tomtom215/audiencia/internal/logging"
	"github.com/tomtom215/audiencia/internal/metrics"
	"github.com/tomtom215/audiencia/internal/models"
)

// ErrUnavailable is wrapped by every error caused by the metadata store
// being unreachable or failing a query.
var ErrUnavailable = errors.New("event catalog unavailable")

// DefaultEventsTable is the relation queried when none is configured.
const DefaultEventsTable = "EVENTS"

// DefaultQueryTimeout bounds a catalog query when WithQueryTimeout is not set.
const DefaultQueryTimeout = 15 * time.Second

// Querier is the subset of *sql.DB the catalog needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Lister lists active events for an organizer.
// Catalog and CachedCatalog both implement it.
type Lister interface {
	ListActiveEvents(ctx context.Context, organizerID string) ([]models.Event, error)
}

// Catalog reads event metadata through a Querier.
type Catalog struct {
	db          Querier
	table       string
	placeholder string
	query       string
	timeout     time.Duration
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithPostgresPlaceholders switches the bind marker to $1 for PostgreSQL.
func WithPostgresPlaceholders() Option {
	return func(c *Catalog) {
		c.placeholder = "$1"
	}
}

// WithQueryTimeout bounds each catalog query. Non-positive values keep
// DefaultQueryTimeout.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Catalog) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a Catalog reading from table. An empty table name uses
// DefaultEventsTable. The name must already be a validated identifier.
func New(db Querier, table string, opts ...Option) *Catalog {
	if table == "" {
		table = DefaultEventsTable
	}
	c := &Catalog{
		db:          db,
		table:       table,
		placeholder: "?",
		timeout:     DefaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.query = buildQuery(c.table, c.placeholder)
	return c
}

const selectColumns = `event_id, organizer_id, name, category, subcategory, subdomain, organizer_name, email, started_at`

func buildQuery(table, placeholder string) string {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE organizer_id = %s AND status = 'active' ORDER BY name, started_at",
		selectColumns, table, placeholder,
	)
}

// ListActiveEvents returns the organizer's active events ordered by name,
// then start date. Zero matches is an empty slice and a nil error. Any store
// failure is an empty slice and an error wrapping ErrUnavailable.
func (c *Catalog) ListActiveEvents(ctx context.Context, organizerID string) ([]models.Event, error) {
	start := time.Now()
	events, err := c.list(ctx, organizerID)
	metrics.RecordCatalogQuery("list_active_events", time.Since(start), err)

	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("organizer_id", organizerID).
			Bool("connection_lost", database.IsConnectionError(err)).
			Msg("Event catalog query failed")
		return []models.Event{}, fmt.Errorf("%w: organizer %s: %w", ErrUnavailable, organizerID, err)
	}

	logging.Ctx(ctx).Debug().
		Str("organizer_id", organizerID).
		Int("events", len(events)).
		Dur("duration", time.Since(start)).
		Msg("Listed active events")
	return events, nil
}

// ListActiveEventsOrEmpty is ListActiveEvents for callers that treat an
// unavailable store the same as an organizer without events.
func ListActiveEventsOrEmpty(ctx context.Context, l Lister, organizerID string) []models.Event {
	events, err := l.ListActiveEvents(ctx, organizerID)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("organizer_id", organizerID).Msg("Showing empty event list")
		return []models.Event{}
	}
	return events
}

func (c *Catalog) list(ctx context.Context, organizerID string) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, c.query, organizerID)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)

	events := make([]models.Event, 0, 16)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		event.OrganizerID = coalesce(event.OrganizerID, organizerID)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// scanEvent reads one row. Text columns may be NULL in the warehouse.
func scanEvent(rows *sql.Rows) (models.Event, error) {
	var (
		eventID, organizerID, name       sql.NullString
		category, subcategory, subdomain sql.NullString
		organizerName, email             sql.NullString
		startedAt                        sql.NullTime
	)
	if err := rows.Scan(
		&eventID, &organizerID, &name,
		&category, &subcategory, &subdomain,
		&organizerName, &email, &startedAt,
	); err != nil {
		return models.Event{}, fmt.Errorf("failed to scan event: %w", err)
	}

	event := models.Event{
		EventID:       eventID.String,
		OrganizerID:   organizerID.String,
		Name:          name.String,
		Category:      category.String,
		Subcategory:   subcategory.String,
		Subdomain:     subdomain.String,
		OrganizerName: organizerName.String,
		Email:         email.String,
	}
	if startedAt.Valid {
		event.StartedAt = models.NewDate(startedAt.Time)
	}
	return event, nil
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
