// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/audiencia/internal/catalog"
	"github.com/tomtom215/audiencia/internal/logging"
	"github.com/tomtom215/audiencia/internal/models"
	"github.com/tomtom215/audiencia/internal/report"
)

// RegionReport is the body of the regions endpoint.
type RegionReport struct {
	Country   string               `json:"country"`
	Hostnames []string             `json:"hostnames"`
	Regions   []models.RegionTotal `json:"regions"`
}

// errEventsNotFound carries the event ids the catalog did not list.
type errEventsNotFound struct {
	missing []string
}

func (e *errEventsNotFound) Error() string {
	return fmt.Sprintf("events not found: %s", strings.Join(e.missing, ", "))
}

// Reports handles POST /api/v1/reports and returns all three tables.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ReportRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if err := req.checkMode(); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	hostnames, err := h.resolveHostnames(r.Context(), &req)
	if err != nil {
		var notFound *errEventsNotFound
		if errors.As(err, &notFound) {
			respondErrorDetails(w, r, http.StatusNotFound, &models.APIError{
				Code:    CodeNotFound,
				Message: "Some events are not active for this organizer",
				Details: map[string]interface{}{"missing_event_ids": notFound.missing},
			}, nil)
			return
		}
		respondUpstreamError(w, r, err)
		return
	}

	sel, ok := h.selection(w, r, hostnames)
	if !ok {
		return
	}

	result, err := report.FetchAll(r.Context(), h.reports, sel, h.config.Report.Parallel)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	if len(result.Degraded) > 0 {
		logging.Ctx(r.Context()).Warn().
			Interface("degraded", result.Degraded).
			Int("hostnames", sel.Len()).
			Msg("Serving report with empty tables for unavailable kinds")
	}

	respondSuccess(w, r, start, result, len(result.Degraded) > 0)
}

// ReportByKind handles GET /api/v1/reports/{kind}
func (h *Handler) ReportByKind(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	kind, err := models.ParseReportKind(chi.URLParam(r, "kind"))
	if err != nil {
		respondError(w, r, http.StatusNotFound, CodeNotFound, err.Error(), nil)
		return
	}

	query := HostnamesQuery{Hostnames: queryValues(r, "hostname")}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	sel, ok := h.selection(w, r, query.Hostnames)
	if !ok {
		return
	}

	table, err := fetchKind(r.Context(), h.reports, kind, sel)
	degraded := errors.Is(err, report.ErrUnavailable)
	if err != nil && !degraded {
		respondUpstreamError(w, r, err)
		return
	}

	respondSuccess(w, r, start, table, degraded)
}

// RegionTotals handles GET /api/v1/reports/regions and sums city report
// buyers per region of one country.
func (h *Handler) RegionTotals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := HostnamesQuery{
		Hostnames: queryValues(r, "hostname"),
		Country:   strings.TrimSpace(r.URL.Query().Get("country")),
	}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if query.Country == "" {
		query.Country = report.DefaultCountry
	}
	sel, ok := h.selection(w, r, query.Hostnames)
	if !ok {
		return
	}

	table, err := h.reports.FetchCityReport(r.Context(), sel)
	degraded := errors.Is(err, report.ErrUnavailable)
	if err != nil && !degraded {
		respondUpstreamError(w, r, err)
		return
	}

	respondSuccess(w, r, start, RegionReport{
		Country:   query.Country,
		Hostnames: sel.Hostnames(),
		Regions:   report.AggregateByRegion(table, query.Country),
	}, degraded)
}

// InvalidateCache handles DELETE /api/v1/cache
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	removed := 0
	for _, inv := range h.invalidators {
		removed += inv.Invalidate()
	}

	logging.Ctx(r.Context()).Info().Int("entries", removed).Msg("Cache invalidated")

	respondSuccess(w, r, time.Time{}, map[string]interface{}{
		"invalidated": removed,
	}, false)
}

// resolveHostnames turns a report request into hostnames, listing the
// organizer's events when the selection is by event.
func (h *Handler) resolveHostnames(ctx context.Context, req *ReportRequest) ([]string, error) {
	if !req.byOrganizer() {
		return req.Hostnames, nil
	}

	events, err := h.catalog.ListActiveEvents(ctx, req.OrganizerID)
	if err != nil {
		return nil, err
	}

	selected := catalog.FilterByCategory(events, req.Category)
	if !req.All {
		var missing []string
		selected, missing = catalog.SelectByID(selected, req.EventIDs)
		if len(missing) > 0 {
			return nil, &errEventsNotFound{missing: missing}
		}
	}

	return catalog.Hostnames(selected, h.config.Report.HostDomain), nil
}

// selection normalizes hostnames and enforces the configured size limit.
// It writes the error response itself and reports false on rejection.
func (h *Handler) selection(w http.ResponseWriter, r *http.Request, hostnames []string) (report.Selection, bool) {
	sel := report.NewSelection(hostnames...)
	if limit := h.config.Report.MaxHostnames; limit > 0 && sel.Len() > limit {
		respondErrorDetails(w, r, http.StatusBadRequest, &models.APIError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("selection has %d hostnames, at most %d allowed", sel.Len(), limit),
			Details: map[string]interface{}{"max_hostnames": limit},
		}, nil)
		return report.Selection{}, false
	}
	return sel, true
}

// fetchKind fetches one table as an untyped value for the JSON envelope.
func fetchKind(ctx context.Context, f report.Fetcher, kind models.ReportKind, sel report.Selection) (interface{}, error) {
	switch kind {
	case models.ReportKindCity:
		return f.FetchCityReport(ctx, sel)
	case models.ReportKindAge:
		return f.FetchAgeReport(ctx, sel)
	case models.ReportKindGender:
		return f.FetchGenderReport(ctx, sel)
	default:
		return nil, fmt.Errorf("unknown report kind %q", kind)
	}
}
