// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Validation:
// Load() validates all required fields and returns an error if:
//   - GA4_PROPERTY_ID is missing or not numeric
//   - Values are malformed (unknown driver, negative durations, invalid URL)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Report    ReportConfig    `koanf:"report"`
	Cache     CacheConfig     `koanf:"cache"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig holds event metadata store settings.
//
// Environment Variables:
//   - DATABASE_DRIVER: duckdb or pgx (default: duckdb)
//   - DATABASE_DSN / DUCKDB_PATH: DuckDB file path (":memory:" allowed) or PostgreSQL URL
//   - EVENTS_TABLE: relation holding event metadata (default: EVENTS)
//   - SEED_MOCK_DATA: insert sample events on startup (DuckDB only)
type DatabaseConfig struct {
	Driver       string        `koanf:"driver" validate:"oneof=duckdb pgx"`
	DSN          string        `koanf:"dsn"`
	EventsTable  string        `koanf:"events_table" validate:"required,max=128"`
	MaxOpenConns int           `koanf:"max_open_conns" validate:"min=0,max=256"`
	QueryTimeout time.Duration `koanf:"query_timeout"`
	SeedMockData bool          `koanf:"seed_mock_data"`
}

// AnalyticsConfig holds GA4 Data API client settings.
//
// Environment Variables:
//   - GA4_PROPERTY_ID: numeric GA4 property (required)
//   - GA4_BASE_URL: Data API endpoint (default: https://analyticsdata.googleapis.com)
//   - GOOGLE_APPLICATION_CREDENTIALS: service account JSON; empty uses application default credentials
//   - ANALYTICS_REQUEST_TIMEOUT: per-report timeout (default: 30s)
//   - ANALYTICS_REQUESTS_PER_SECOND / ANALYTICS_BURST: client-side rate limit
//   - ANALYTICS_MAX_RETRIES: retries on 429/503 responses (default: 3)
type AnalyticsConfig struct {
	PropertyID        string        `koanf:"property_id"`
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	CredentialsFile   string        `koanf:"credentials_file"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int           `koanf:"burst" validate:"min=1"`
	MaxRetries        int           `koanf:"max_retries" validate:"min=0,max=10"`

	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig tunes the breaker wrapping the analytics client.
type CircuitBreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// ReportConfig holds report query settings.
//
// Environment Variables:
//   - REPORT_HOST_DOMAIN: domain event subdomains live under (default: example.com)
//   - REPORT_PAGE_PATH_MARKER: page path fragment identifying completed purchases (default: /finish)
//   - REPORT_START_DATE / REPORT_END_DATE: GA4 relative date range (default: 365daysAgo..today)
//   - REPORT_MAX_HOSTNAMES: largest accepted selection (default: 200)
type ReportConfig struct {
	HostDomain     string `koanf:"host_domain" validate:"required,fqdn"`
	PagePathMarker string `koanf:"page_path_marker" validate:"required"`
	StartDate      string `koanf:"start_date" validate:"required"`
	EndDate        string `koanf:"end_date" validate:"required"`
	MaxHostnames   int    `koanf:"max_hostnames" validate:"min=1,max=1000"`
	Parallel       bool   `koanf:"parallel"`
}

// CacheConfig holds session cache settings.
//
// Environment Variables:
//   - CACHE_ENABLED: memoize catalog and report lookups (default: true)
//   - CACHE_TTL: entry lifetime (default: 12h)
type CacheConfig struct {
	Enabled         bool          `koanf:"enabled"`
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// SecurityConfig holds HTTP surface protection settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration with the following precedence (highest first):
//  1. Environment variables (including values from an optional .env file)
//  2. Config file (config.yaml or CONFIG_PATH)
//  3. Built-in defaults
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "" || c.Server.Environment == "development"
}
