// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package api

import (
	"context"
	"net/http"
	"time"
)

const readinessTimeout = 2 * time.Second

// HealthLive reports that the process is serving requests.
// It never touches dependencies so orchestrators don't restart on upstream outages.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, time.Time{}, map[string]interface{}{
		"status":         "alive",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	}, false)
}

// HealthReady pings the metadata store. The analytics service is not
// checked; its outages degrade reports instead of failing readiness.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable,
			"Metadata store not configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable,
			"Metadata store is not reachable", err)
		return
	}

	respondSuccess(w, r, time.Time{}, map[string]interface{}{
		"status":   "ready",
		"database": "connected",
	}, false)
}
