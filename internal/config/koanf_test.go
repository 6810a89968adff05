// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolateEnv points config discovery at an empty temp dir so developer
// files and variables do not leak into tests.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Setenv(DotEnvPathEnvVar, filepath.Join(dir, "missing.env"))
	for env := range envMappings {
		t.Setenv(strings.ToUpper(env), "")
		os.Unsetenv(strings.ToUpper(env))
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Database.Driver != "duckdb" {
		t.Errorf("Database.Driver = %q, want duckdb", cfg.Database.Driver)
	}
	if cfg.Database.EventsTable != "EVENTS" {
		t.Errorf("Database.EventsTable = %q, want EVENTS", cfg.Database.EventsTable)
	}
	if cfg.Analytics.PropertyID != "" {
		t.Errorf("Analytics.PropertyID should be empty by default, got %q", cfg.Analytics.PropertyID)
	}
	if cfg.Analytics.RequestTimeout != 30*time.Second {
		t.Errorf("Analytics.RequestTimeout = %v, want 30s", cfg.Analytics.RequestTimeout)
	}
	if cfg.Report.HostDomain != "example.com" {
		t.Errorf("Report.HostDomain = %q, want example.com", cfg.Report.HostDomain)
	}
	if cfg.Report.PagePathMarker != "/finish" {
		t.Errorf("Report.PagePathMarker = %q, want /finish", cfg.Report.PagePathMarker)
	}
	if cfg.Report.StartDate != "365daysAgo" || cfg.Report.EndDate != "today" {
		t.Errorf("Report date range = %s..%s, want 365daysAgo..today", cfg.Report.StartDate, cfg.Report.EndDate)
	}
	if cfg.Cache.TTL != 12*time.Hour {
		t.Errorf("Cache.TTL = %v, want 12h", cfg.Cache.TTL)
	}
	if cfg.Server.Port != 3857 {
		t.Errorf("Server.Port = %d, want 3857", cfg.Server.Port)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"GA4_PROPERTY_ID", "analytics.property_id"},
		{"GOOGLE_APPLICATION_CREDENTIALS", "analytics.credentials_file"},
		{"DUCKDB_PATH", "database.dsn"},
		{"DATABASE_DRIVER", "database.driver"},
		{"REPORT_HOST_DOMAIN", "report.host_domain"},
		{"CACHE_TTL", "cache.ttl"},
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GA4_PROPERTY_ID", "251040423")
	t.Setenv("DUCKDB_PATH", ":memory:")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("REPORT_PARALLEL", "false")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Analytics.PropertyID != "251040423" {
		t.Errorf("PropertyID = %q", cfg.Analytics.PropertyID)
	}
	if cfg.Database.DSN != ":memory:" {
		t.Errorf("Database.DSN = %q, want :memory:", cfg.Database.DSN)
	}
	if cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("Cache.TTL = %v, want 30m", cfg.Cache.TTL)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Report.Parallel {
		t.Error("Report.Parallel should be false")
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := isolateEnv(t)

	path := filepath.Join(dir, "config.yaml")
	content := `
analytics:
  property_id: "123456"
  request_timeout: 10s
report:
  host_domain: boletos.example.org
database:
  dsn: ":memory:"
  events_table: analytics.events
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Analytics.PropertyID != "123456" {
		t.Errorf("PropertyID = %q, want 123456", cfg.Analytics.PropertyID)
	}
	if cfg.Analytics.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.Analytics.RequestTimeout)
	}
	if cfg.Report.HostDomain != "boletos.example.org" {
		t.Errorf("HostDomain = %q", cfg.Report.HostDomain)
	}
	if cfg.Database.EventsTable != "analytics.events" {
		t.Errorf("EventsTable = %q", cfg.Database.EventsTable)
	}
	if cfg.Report.PagePathMarker != "/finish" {
		t.Errorf("default PagePathMarker lost: %q", cfg.Report.PagePathMarker)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	dir := isolateEnv(t)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("analytics:\n  property_id: \"111\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("GA4_PROPERTY_ID", "222")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Analytics.PropertyID != "222" {
		t.Errorf("PropertyID = %q, want env value 222", cfg.Analytics.PropertyID)
	}
}

func TestLoadWithKoanfDotEnv(t *testing.T) {
	dir := isolateEnv(t)

	envPath := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envPath, []byte("GA4_PROPERTY_ID=333\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(DotEnvPathEnvVar, envPath)
	t.Setenv("LOG_LEVEL", "warn") // already set: .env must not override

	cfg, err := LoadWithKoanf()
	t.Cleanup(func() { os.Unsetenv("GA4_PROPERTY_ID") })
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Analytics.PropertyID != "333" {
		t.Errorf("PropertyID = %q, want 333 from .env", cfg.Analytics.PropertyID)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want process env value warn", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing property id",
			env:     map[string]string{},
			wantErr: "GA4_PROPERTY_ID is required",
		},
		{
			name:    "non-numeric property id",
			env:     map[string]string{"GA4_PROPERTY_ID": "properties/1"},
			wantErr: "GA4_PROPERTY_ID must be numeric",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"GA4_PROPERTY_ID": "1", "DATABASE_DRIVER": "sqlite"},
			wantErr: "invalid configuration",
		},
		{
			name:    "pgx needs postgres url",
			env:     map[string]string{"GA4_PROPERTY_ID": "1", "DATABASE_DRIVER": "pgx", "DATABASE_DSN": "/data/x.duckdb"},
			wantErr: "postgres:// URL",
		},
		{
			name:    "events table injection",
			env:     map[string]string{"GA4_PROPERTY_ID": "1", "EVENTS_TABLE": "EVENTS; DROP TABLE x"},
			wantErr: "EVENTS_TABLE",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"GA4_PROPERTY_ID": "1", "LOG_LEVEL": "verbose"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "bad port",
			env:     map[string]string{"GA4_PROPERTY_ID": "1", "HTTP_PORT": "70000"},
			wantErr: "HTTP_PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	t.Parallel()

	valid := []string{"EVENTS", "events", "analytics.events", "_tmp1"}
	invalid := []string{"", "1events", "events;", "a..b", "ev ents", `"EVENTS"`}

	for _, s := range valid {
		if !isIdentifier(s) {
			t.Errorf("isIdentifier(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if isIdentifier(s) {
			t.Errorf("isIdentifier(%q) = true, want false", s)
		}
	}
}
