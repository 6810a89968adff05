// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/audiencia/internal/middleware"
)

func TestRouter_Envelopes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(NewHandler(testConfig(), fakePinger{}, &fakeLister{}, newFakeFetcher()))

	tests := []struct {
		name     string
		method   string
		target   string
		wantCode int
		wantErr  string
	}{
		{"unknown route", http.MethodGet, "/api/v1/nope", http.StatusNotFound, CodeNotFound},
		{"wrong method", http.MethodGet, "/api/v1/cache", http.StatusMethodNotAllowed, CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(t, router, tt.method, tt.target, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantErr)
			}
		})
	}
}

func TestRouter_RequestIDPropagates(t *testing.T) {
	t.Parallel()

	router := newTestRouter(NewHandler(testConfig(), fakePinger{}, &fakeLister{}, newFakeFetcher()))

	rec := serve(t, router, http.MethodGet, "/api/v1/health/live", "")
	id := rec.Header().Get(middleware.RequestIDHeader)
	if id == "" {
		t.Fatal("missing X-Request-ID header")
	}
	if env := decodeEnvelope(t, rec); env.Metadata.RequestID != id {
		t.Errorf("metadata.request_id = %q, want %q", env.Metadata.RequestID, id)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("missing ETag header")
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	router := newTestRouter(NewHandler(testConfig(), fakePinger{}, &fakeLister{}, newFakeFetcher()))
	serve(t, router, http.MethodGet, "/api/v1/health/live", "")

	rec := serve(t, router, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}
