// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package api

import (
	"context"
	"net/http"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/audiencia/internal/analytics"
	"github.com/tomtom215/audiencia/internal/cache"
	"github.com/tomtom215/audiencia/internal/catalog"
	"github.com/tomtom215/audiencia/internal/config"
	"github.com/tomtom215/audiencia/internal/database"
	"github.com/tomtom215/audiencia/internal/models"
	"github.com/tomtom215/audiencia/internal/report"
)

// scriptedRunner answers city queries with fixed rows and every other kind
// with an empty response.
type scriptedRunner struct {
	mu       sync.Mutex
	city     *analytics.RunReportResponse
	requests []*analytics.RunReportRequest
}

func (s *scriptedRunner) RunReport(_ context.Context, req *analytics.RunReportRequest) (*analytics.RunReportResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if len(req.Dimensions) > 0 && req.Dimensions[0].Name == "city" {
		return s.city, nil
	}
	return &analytics.RunReportResponse{}, nil
}

func (s *scriptedRunner) hostFilter(dimension string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, req := range s.requests {
		if req.Dimensions[0].Name != dimension || req.DimensionFilter == nil || req.DimensionFilter.AndGroup == nil {
			continue
		}
		for _, expr := range req.DimensionFilter.AndGroup.Expressions {
			if expr.Filter != nil && expr.Filter.FieldName == report.HostNameField && expr.Filter.InListFilter != nil {
				return expr.Filter.InListFilter.Values
			}
		}
	}
	return nil
}

func (s *scriptedRunner) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func setupEventsDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Driver:       database.DriverDuckDB,
		DSN:          ":memory:",
		EventsTable:  "EVENTS",
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := db.EnsureEventsTable(ctx); err != nil {
		t.Fatal(err)
	}
	started := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	for _, ev := range []struct{ id, name, sub, status string }{
		{"ev-alpha", "Alpha Fest", "alpha", "active"},
		{"ev-beta", "Beta Run", "beta", "active"},
		{"ev-old", "Old Expo", "old", "inactive"},
	} {
		if _, err := db.Conn().ExecContext(ctx,
			`INSERT INTO EVENTS (event_id, organizer_id, name, category, subcategory, subdomain, organizer_name, email, status, started_at)
			 VALUES (?, '42', ?, 'Música', '', ?, 'Demo Producciones', 'eventos@example.com', ?, ?)`,
			ev.id, ev.name, ev.sub, ev.status, started); err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func TestEndToEnd_OrganizerReport(t *testing.T) {
	db := setupEventsDB(t)

	runner := &scriptedRunner{city: &analytics.RunReportResponse{
		DimensionHeaders: []analytics.Header{{Name: "city"}, {Name: "region"}, {Name: "country"}},
		MetricHeaders:    []analytics.Header{{Name: report.BuyersMetric, Type: "TYPE_INTEGER"}},
		Rows: []analytics.Row{{
			DimensionValues: []analytics.Value{{Value: "Toluca"}, {Value: "State of Mexico"}, {Value: "Mexico"}},
			MetricValues:    []analytics.Value{{Value: "10"}},
		}},
		RowCount: 1,
	}}

	cfg := testConfig()
	store := cache.New(time.Hour)
	defer store.Close()

	events := catalog.NewCached(catalog.New(db, "EVENTS"), store)
	pipeline := report.NewCachedPipeline(
		report.NewPipeline(runner, report.NewQueryOptions("123456", &cfg.Report), 5*time.Second),
		store,
	)
	router := newTestRouter(NewHandler(cfg, db, events, pipeline, events, pipeline))

	rec := serve(t, router, http.MethodPost, "/api/v1/reports", `{"organizer_id":"42","event_ids":["ev-alpha","ev-beta"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var got models.BuyerReport
	decodeData(t, env, &got)

	wantHosts := []string{"alpha.example.com", "beta.example.com"}
	if !reflect.DeepEqual(got.Hostnames, wantHosts) {
		t.Errorf("hostnames = %v, want %v", got.Hostnames, wantHosts)
	}
	if filter := runner.hostFilter("city"); !reflect.DeepEqual(filter, wantHosts) {
		t.Errorf("hostName filter = %v, want %v", filter, wantHosts)
	}

	wantCity := []models.CityReportRow{{City: "Toluca", Region: "México", Country: "Mexico", Buyers: 10}}
	if !reflect.DeepEqual(got.City.Rows, wantCity) {
		t.Errorf("city rows = %+v, want %+v", got.City.Rows, wantCity)
	}
	if len(got.Age.Rows) != 0 || len(got.Gender.Rows) != 0 {
		t.Errorf("age/gender should be empty, got %d/%d rows", len(got.Age.Rows), len(got.Gender.Rows))
	}
	if env.Metadata.Degraded {
		t.Error("metadata.degraded should be false")
	}
	if calls := runner.calls(); calls != 3 {
		t.Fatalf("runner calls = %d, want 3", calls)
	}

	// Same selection in a different order is served from the cache.
	serve(t, router, http.MethodPost, "/api/v1/reports", `{"hostnames":["beta.example.com","alpha.example.com"]}`)
	if calls := runner.calls(); calls != 3 {
		t.Errorf("runner calls after repeat = %d, want 3", calls)
	}

	rec = serve(t, router, http.MethodGet, "/api/v1/reports/regions?hostname=alpha.example.com,beta.example.com", "")
	var regions RegionReport
	decodeData(t, decodeEnvelope(t, rec), &regions)
	if want := []models.RegionTotal{{Region: "México", Buyers: 10}}; !reflect.DeepEqual(regions.Regions, want) {
		t.Errorf("regions = %+v, want %+v", regions.Regions, want)
	}

	serve(t, router, http.MethodDelete, "/api/v1/cache", "")
	serve(t, router, http.MethodPost, "/api/v1/reports", `{"organizer_id":"42","all":true}`)
	if calls := runner.calls(); calls != 6 {
		t.Errorf("runner calls after invalidation = %d, want 6", calls)
	}

	rec = serve(t, router, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", rec.Code)
	}
}
