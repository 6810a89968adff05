// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/audiencia/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %s", err.Error())
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateAnalytics(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateDatabase validates the metadata store settings
func (c *Config) validateDatabase() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.Database.Driver == "pgx" && !strings.HasPrefix(c.Database.DSN, "postgres") {
		return fmt.Errorf("DATABASE_DSN must be a postgres:// URL when DATABASE_DRIVER=pgx")
	}
	if c.Database.SeedMockData && c.Database.Driver != "duckdb" {
		return fmt.Errorf("SEED_MOCK_DATA is only supported with DATABASE_DRIVER=duckdb")
	}
	if !isIdentifier(c.Database.EventsTable) {
		return fmt.Errorf("EVENTS_TABLE must be a plain or schema-qualified SQL identifier")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DATABASE_QUERY_TIMEOUT must be positive")
	}
	return nil
}

// validateAnalytics validates the GA4 client settings
func (c *Config) validateAnalytics() error {
	if c.Analytics.PropertyID == "" {
		return fmt.Errorf("GA4_PROPERTY_ID is required")
	}
	if !isDigits(c.Analytics.PropertyID) {
		return fmt.Errorf("GA4_PROPERTY_ID must be numeric")
	}
	if c.Analytics.RequestTimeout <= 0 {
		return fmt.Errorf("ANALYTICS_REQUEST_TIMEOUT must be positive")
	}
	if c.Analytics.CircuitBreaker.Enabled && c.Analytics.CircuitBreaker.FailureThreshold == 0 {
		return fmt.Errorf("CIRCUIT_BREAKER_FAILURES must be at least 1 when the breaker is enabled")
	}
	return nil
}

// validateCache validates the session cache settings
func (c *Config) validateCache() error {
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when caching is enabled")
	}
	return nil
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// isIdentifier accepts names such as EVENTS or analytics.events.
// The events relation is interpolated into SQL, so nothing else is allowed.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			switch {
			case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			case r >= '0' && r <= '9' && i > 0:
			default:
				return false
			}
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
