// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package api

import "errors"

// OrganizerRequest carries the organizer path parameter.
type OrganizerRequest struct {
	OrganizerID string `json:"organizer_id" validate:"required,organizer_id"`
	Category    string `json:"category" validate:"max=128"`
}

// ReportRequest selects the events to report on. Exactly one of Hostnames
// or OrganizerID must be used; with OrganizerID either EventIDs or All is
// required.
type ReportRequest struct {
	Hostnames   []string `json:"hostnames" validate:"omitempty,max=1000,dive,hostname_rfc1123"`
	OrganizerID string   `json:"organizer_id" validate:"omitempty,organizer_id"`
	EventIDs    []string `json:"event_ids" validate:"omitempty,max=1000,dive,required,max=64"`
	All         bool     `json:"all"`
	Category    string   `json:"category" validate:"max=128"`
}

var (
	errMixedSelection   = errors.New("use either hostnames or organizer_id, not both")
	errMissingEvents    = errors.New("organizer_id requires event_ids or all")
	errAllWithEventIDs  = errors.New("all and event_ids are mutually exclusive")
	errOrphanEventField = errors.New("event_ids, all and category require organizer_id")
)

// byOrganizer reports whether hostnames are resolved through the catalog.
func (req *ReportRequest) byOrganizer() bool {
	return req.OrganizerID != ""
}

// checkMode enforces the selection rules validator tags cannot express.
func (req *ReportRequest) checkMode() error {
	if !req.byOrganizer() {
		if len(req.EventIDs) > 0 || req.All || req.Category != "" {
			return errOrphanEventField
		}
		return nil
	}
	switch {
	case len(req.Hostnames) > 0:
		return errMixedSelection
	case req.All && len(req.EventIDs) > 0:
		return errAllWithEventIDs
	case !req.All && len(req.EventIDs) == 0:
		return errMissingEvents
	}
	return nil
}

// HostnamesQuery is the query form of a hostname selection.
type HostnamesQuery struct {
	Hostnames []string `json:"hostname" validate:"max=1000,dive,hostname_rfc1123"`
	Country   string   `json:"country" validate:"max=64"`
}
