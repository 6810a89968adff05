// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package api

import (
	"errors"
	"net/http"
	"testing"
)

func TestHealthLive(t *testing.T) {
	t.Parallel()

	h := NewHandler(testConfig(), fakePinger{err: errors.New("down")}, &fakeLister{}, newFakeFetcher())
	rec := serve(t, newTestRouter(h), http.MethodGet, "/api/v1/health/live", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even with a failing store", rec.Code)
	}
	var data map[string]interface{}
	decodeData(t, decodeEnvelope(t, rec), &data)
	if data["status"] != "alive" {
		t.Errorf("status = %v, want alive", data["status"])
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		db       Pinger
		wantCode int
	}{
		{"reachable", fakePinger{}, http.StatusOK},
		{"unreachable", fakePinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable},
		{"not configured", nil, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHandler(testConfig(), tt.db, &fakeLister{}, newFakeFetcher())
			rec := serve(t, newTestRouter(h), http.MethodGet, "/api/v1/health/ready", "")

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			env := decodeEnvelope(t, rec)
			if tt.wantCode != http.StatusOK && (env.Error == nil || env.Error.Code != CodeServiceUnavailable) {
				t.Errorf("error = %+v, want %s", env.Error, CodeServiceUnavailable)
			}
		})
	}
}
