// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package config provides centralized configuration management for Audiencia.

Configuration is layered with Koanf v2, highest priority last:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/audiencia/config.yaml)
 3. Environment variables, after an optional .env file (DOTENV_PATH or ./.env)
    has been merged into the process environment with godotenv

Only environment variables listed in envMappings are read.

# Sections

  - database: metadata store driver (duckdb or pgx), DSN, events relation
  - analytics: GA4 property, credentials, timeout, rate limit, circuit breaker
  - report: host domain, purchase page marker, date range, selection size
  - cache: session cache TTL (12h by default)
  - server: HTTP listener
  - security: rate limiting and CORS
  - logging: zerolog level and format

# Example config.yaml

	analytics:
	  property_id: "251040423"
	  request_timeout: 30s
	report:
	  host_domain: example.com
	cache:
	  ttl: 12h

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
