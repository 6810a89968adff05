// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/audiencia/internal/config"
	"github.com/tomtom215/audiencia/internal/models"
	"github.com/tomtom215/audiencia/internal/report"
)

// envelope mirrors models.APIResponse with Data left raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("failed to decode data %s: %v", env.Data, err)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Report: config.ReportConfig{
			HostDomain:   "example.com",
			MaxHostnames: 5,
			Parallel:     true,
		},
		Security: config.SecurityConfig{RateLimitDisabled: true},
	}
}

// newTestRouter builds the full chi tree around a handler.
func newTestRouter(h *Handler) http.Handler {
	return NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFrom(&h.config.Security))).SetupChi()
}

func serve(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type fakeLister struct {
	events map[string][]models.Event
	err    error
}

func (f *fakeLister) ListActiveEvents(_ context.Context, organizerID string) ([]models.Event, error) {
	if f.err != nil {
		return []models.Event{}, f.err
	}
	events, ok := f.events[organizerID]
	if !ok {
		return []models.Event{}, nil
	}
	return events, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeInvalidator int

func (f fakeInvalidator) Invalidate() int { return int(f) }

// fakeFetcher serves fixed tables and records the selections it saw.
type fakeFetcher struct {
	mu         sync.Mutex
	city       models.ReportTable[models.CityReportRow]
	age        models.ReportTable[models.AgeReportRow]
	gender     models.ReportTable[models.GenderReportRow]
	errs       map[models.ReportKind]error
	selections []report.Selection
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		city:   models.NewReportTable[models.CityReportRow](models.ReportKindCity, report.CitySpec.Columns(), 0),
		age:    models.NewReportTable[models.AgeReportRow](models.ReportKindAge, report.AgeSpec.Columns(), 0),
		gender: models.NewReportTable[models.GenderReportRow](models.ReportKindGender, report.GenderSpec.Columns(), 0),
		errs:   make(map[models.ReportKind]error),
	}
}

func (f *fakeFetcher) record(sel report.Selection, kind models.ReportKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selections = append(f.selections, sel)
	return f.errs[kind]
}

func (f *fakeFetcher) FetchCityReport(_ context.Context, sel report.Selection) (models.ReportTable[models.CityReportRow], error) {
	if err := f.record(sel, models.ReportKindCity); err != nil {
		return models.NewReportTable[models.CityReportRow](models.ReportKindCity, report.CitySpec.Columns(), 0), err
	}
	return f.city, nil
}

func (f *fakeFetcher) FetchAgeReport(_ context.Context, sel report.Selection) (models.ReportTable[models.AgeReportRow], error) {
	if err := f.record(sel, models.ReportKindAge); err != nil {
		return models.NewReportTable[models.AgeReportRow](models.ReportKindAge, report.AgeSpec.Columns(), 0), err
	}
	return f.age, nil
}

func (f *fakeFetcher) FetchGenderReport(_ context.Context, sel report.Selection) (models.ReportTable[models.GenderReportRow], error) {
	if err := f.record(sel, models.ReportKindGender); err != nil {
		return models.NewReportTable[models.GenderReportRow](models.ReportKindGender, report.GenderSpec.Columns(), 0), err
	}
	return f.gender, nil
}

func (f *fakeFetcher) lastSelection() report.Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.selections) == 0 {
		return report.Selection{}
	}
	return f.selections[len(f.selections)-1]
}

func organizer42() map[string][]models.Event {
	return map[string][]models.Event{
		"42": {
			{EventID: "ev-alpha", OrganizerID: "42", Name: "Alpha Fest", Category: "Música", Subdomain: "alpha", OrganizerName: "Demo Producciones", Email: "eventos@example.com"},
			{EventID: "ev-beta", OrganizerID: "42", Name: "Beta Run", Category: "Deportes", Subdomain: "beta", OrganizerName: "Demo Producciones", Email: "eventos@example.com"},
		},
	}
}
