// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package api

import (
	"context"
	"time"

	"github.com/tomtom215/audiencia/internal/catalog"
	"github.com/tomtom215/audiencia/internal/config"
	"github.com/tomtom215/audiencia/internal/report"
)

// Pinger reports metadata store reachability for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Invalidator drops a cache namespace and returns the number of entries removed.
type Invalidator interface {
	Invalidate() int
}

// Handler handles HTTP requests for the API
type Handler struct {
	db           Pinger
	catalog      catalog.Lister
	reports      report.Fetcher
	invalidators []Invalidator
	config       *config.Config
	startTime    time.Time
}

// NewHandler creates a new API handler. Invalidators are run by the cache
// endpoint; pass the cached catalog and cached pipeline.
func NewHandler(cfg *config.Config, db Pinger, events catalog.Lister, reports report.Fetcher, invalidators ...Invalidator) *Handler {
	return &Handler{
		db:           db,
		catalog:      events,
		reports:      reports,
		invalidators: invalidators,
		config:       cfg,
		startTime:    time.Now(),
	}
}
