// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package supervisor runs the long-lived parts of the service under suture v4.

The tree has two layers so a failing background task never takes the HTTP
server down with it:

	RootSupervisor ("audiencia")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheStatsService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog, which main wires to zerolog via logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddMaintenanceService(services.NewCacheStatsService(store, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
