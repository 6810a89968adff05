// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/audiencia/config.yaml",
	"/etc/audiencia/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the .env file location.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultDotEnvPath is read when DOTENV_PATH is unset.
const defaultDotEnvPath = ".env"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       "duckdb",
			DSN:          "/data/audiencia.duckdb",
			EventsTable:  "EVENTS",
			MaxOpenConns: 4,
			QueryTimeout: 15 * time.Second,
			SeedMockData: false,
		},
		Analytics: AnalyticsConfig{
			PropertyID:        "",
			BaseURL:           "https://analyticsdata.googleapis.com",
			CredentialsFile:   "",
			RequestTimeout:    30 * time.Second,
			RequestsPerSecond: 5,
			Burst:             3, // one FetchAll issues three reports at once
			MaxRetries:        3,
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:          true,
				MaxRequests:      3,
				Interval:         time.Minute,
				Timeout:          2 * time.Minute,
				FailureThreshold: 5,
			},
		},
		Report: ReportConfig{
			HostDomain:     "example.com",
			PagePathMarker: "/finish",
			StartDate:      "365daysAgo",
			EndDate:        "today",
			MaxHostnames:   200,
			Parallel:       true,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             12 * time.Hour,
			CleanupInterval: 5 * time.Minute,
		},
		Server: ServerConfig{
			Port:            3857,
			Host:            "0.0.0.0",
			Timeout:         90 * time.Second, // three sequential reports may take 30s each
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting, after an optional .env
//     file has been merged into the process environment
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv merges a .env file into the process environment.
// Variables already set in the environment win; a missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = defaultDotEnvPath
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak into config.
var envMappings = map[string]string{
	// Database mappings
	"database_driver":         "database.driver",
	"database_dsn":            "database.dsn",
	"duckdb_path":             "database.dsn",
	"events_table":            "database.events_table",
	"database_max_open_conns": "database.max_open_conns",
	"database_query_timeout":  "database.query_timeout",
	"seed_mock_data":          "database.seed_mock_data",

	// Analytics mappings
	"ga4_property_id":                "analytics.property_id",
	"ga4_base_url":                   "analytics.base_url",
	"google_application_credentials": "analytics.credentials_file",
	"analytics_request_timeout":      "analytics.request_timeout",
	"analytics_requests_per_second":  "analytics.requests_per_second",
	"analytics_burst":                "analytics.burst",
	"analytics_max_retries":          "analytics.max_retries",
	"circuit_breaker_enabled":        "analytics.circuit_breaker.enabled",
	"circuit_breaker_max_requests":   "analytics.circuit_breaker.max_requests",
	"circuit_breaker_interval":       "analytics.circuit_breaker.interval",
	"circuit_breaker_timeout":        "analytics.circuit_breaker.timeout",
	"circuit_breaker_failures":       "analytics.circuit_breaker.failure_threshold",

	// Report mappings
	"report_host_domain":      "report.host_domain",
	"report_page_path_marker": "report.page_path_marker",
	"report_start_date":       "report.start_date",
	"report_end_date":         "report.end_date",
	"report_max_hostnames":    "report.max_hostnames",
	"report_parallel":         "report.parallel",

	// Cache mappings
	"cache_enabled":          "cache.enabled",
	"cache_ttl":              "cache.ttl",
	"cache_cleanup_interval": "cache.cleanup_interval",

	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - GA4_PROPERTY_ID -> analytics.property_id
//   - DUCKDB_PATH -> database.dsn
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
