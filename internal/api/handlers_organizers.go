// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/audiencia/internal/catalog"
	"github.com/tomtom215/audiencia/internal/models"
)

// EventView is an event as listed by the API, with its analytics hostname.
type EventView struct {
	models.Event
	Hostname string `json:"hostname,omitempty"`
}

// OrganizerEvents is the body of the organizer events endpoint.
type OrganizerEvents struct {
	OrganizerID string      `json:"organizer_id"`
	Category    string      `json:"category,omitempty"`
	Events      []EventView `json:"events"`
}

// OrganizerSummary handles GET /api/v1/organizers/{organizerID}
func (h *Handler) OrganizerSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := OrganizerRequest{OrganizerID: chi.URLParam(r, "organizerID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	events, err := h.catalog.ListActiveEvents(r.Context(), req.OrganizerID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	respondSuccess(w, r, start, catalog.Summarize(req.OrganizerID, events), false)
}

// OrganizerEventList handles GET /api/v1/organizers/{organizerID}/events
func (h *Handler) OrganizerEventList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := OrganizerRequest{
		OrganizerID: chi.URLParam(r, "organizerID"),
		Category:    r.URL.Query().Get("category"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	events, err := h.catalog.ListActiveEvents(r.Context(), req.OrganizerID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	events = catalog.FilterByCategory(events, req.Category)
	views := make([]EventView, 0, len(events))
	for i := range events {
		view := EventView{Event: events[i]}
		if events[i].Subdomain != "" {
			view.Hostname = events[i].Hostname(h.config.Report.HostDomain)
		}
		views = append(views, view)
	}

	respondSuccess(w, r, start, OrganizerEvents{
		OrganizerID: req.OrganizerID,
		Category:    req.Category,
		Events:      views,
	}, false)
}
