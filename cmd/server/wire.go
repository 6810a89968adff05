// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/audiencia/internal/analytics"
	"github.com/tomtom215/audiencia/internal/api"
	"github.com/tomtom215/audiencia/internal/cache"
	"github.com/tomtom215/audiencia/internal/catalog"
	"github.com/tomtom215/audiencia/internal/config"
	"github.com/tomtom215/audiencia/internal/database"
	"github.com/tomtom215/audiencia/internal/logging"
	"github.com/tomtom215/audiencia/internal/report"
)

// app holds the components built from configuration.
type app struct {
	store   *cache.Cache
	handler *api.Handler
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// newAnalyticsRunner builds the authenticated GA4 client, wrapped in a
// circuit breaker when enabled.
func newAnalyticsRunner(ctx context.Context, cfg *config.AnalyticsConfig) (analytics.Runner, error) {
	httpClient, err := analytics.NewHTTPClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load analytics credentials: %w", err)
	}
	return wrapRunner(analytics.NewClient(cfg, httpClient), cfg), nil
}

func wrapRunner(client analytics.Runner, cfg *config.AnalyticsConfig) analytics.Runner {
	if !cfg.CircuitBreaker.Enabled {
		logging.Warn().Msg("Analytics circuit breaker disabled")
		return client
	}
	return analytics.NewCircuitBreakerClient(analytics.DefaultBreakerName, client, cfg.CircuitBreaker)
}

// newApp wires catalog, pipeline and cache into the API handler.
func newApp(cfg *config.Config, db *database.DB, runner analytics.Runner) *app {
	var opts []catalog.Option
	if db.Driver() == database.DriverPostgres {
		opts = append(opts, catalog.WithPostgresPlaceholders())
	}
	if cfg.Database.QueryTimeout > 0 {
		opts = append(opts, catalog.WithQueryTimeout(cfg.Database.QueryTimeout))
	}

	var events catalog.Lister = catalog.New(db, cfg.Database.EventsTable, opts...)
	var reports report.Fetcher = report.NewPipeline(
		runner,
		report.NewQueryOptions(cfg.Analytics.PropertyID, &cfg.Report),
		cfg.Analytics.RequestTimeout,
	)

	if !cfg.Cache.Enabled {
		logging.Info().Msg("Session cache disabled")
		return &app{handler: api.NewHandler(cfg, db, events, reports)}
	}

	store := cache.NewWithCleanup(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	cachedEvents := catalog.NewCached(events, store)
	cachedReports := report.NewCachedPipeline(reports, store)

	return &app{
		store:   store,
		handler: api.NewHandler(cfg, db, cachedEvents, cachedReports, cachedEvents, cachedReports),
	}
}
