// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/audiencia/internal/api"
	"github.com/tomtom215/audiencia/internal/config"
	"github.com/tomtom215/audiencia/internal/database"
	"github.com/tomtom215/audiencia/internal/logging"
	"github.com/tomtom215/audiencia/internal/metrics"
	"github.com/tomtom215/audiencia/internal/supervisor"
	"github.com/tomtom215/audiencia/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("driver", cfg.Database.Driver).
		Str("events_table", cfg.Database.EventsTable).
		Str("host_domain", cfg.Report.HostDomain).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("Starting Audiencia")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Audiencia stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize metadata store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing metadata store")
		}
	}()

	if cfg.Database.SeedMockData {
		logging.Info().Msg("Mock data seeding enabled (SEED_MOCK_DATA=true)")
		if err := db.SeedMockData(ctx); err != nil {
			return fmt.Errorf("seed mock data: %w", err)
		}
	}

	runner, err := newAnalyticsRunner(ctx, &cfg.Analytics)
	if err != nil {
		return err
	}

	app := newApp(cfg, db, runner)
	defer app.close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if app.store != nil {
		tree.AddMaintenanceService(services.NewCacheStatsService(app.store, 0))
	}

	router := api.NewRouter(app.handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)))
	server := &http.Server{
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", addr).Msg("Starting supervisor tree...")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	if ctx.Err() != nil {
		logging.Info().Msg("Received shutdown signal")
	}
	return nil
}
