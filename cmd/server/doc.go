// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package main is the entry point for the Audiencia server.

Audiencia reports who bought tickets to an organizer's events: where buyers
are (city, region, country), how old they are and their gender. Event
metadata comes from a SQL store (DuckDB or PostgreSQL); buyer counts come
from the GA4 Data API.

# Application Architecture

	RootSupervisor ("audiencia")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheStatsService (when the cache is enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Initialization order:

 1. Configuration: koanf v2 (defaults, YAML file, .env, environment)
 2. Logging: zerolog with JSON/console output
 3. Metadata store: DuckDB or pgx, optional mock seed
 4. Analytics client: oauth2 credentials, rate limiter, circuit breaker
 5. Session cache: catalog and report memoization
 6. HTTP API: chi router with CORS, httprate and Prometheus middleware
 7. Supervisor tree, then wait for SIGINT/SIGTERM

# Configuration

The most common environment variables:

	DATABASE_DRIVER=duckdb            # or pgx
	DATABASE_DSN=/data/audiencia.duckdb
	GA4_PROPERTY_ID=123456789
	GOOGLE_APPLICATION_CREDENTIALS=/secrets/sa.json
	REPORT_HOST_DOMAIN=example.com
	CACHE_TTL=12h
	HTTP_PORT=3857
	LOG_LEVEL=info

See internal/config for the full list.
*/
package main
