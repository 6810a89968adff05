// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package models defines data structures for the Audiencia application.

This package contains the data models shared by the catalog, the report
pipeline and the HTTP API. It serves as the single source of truth for
data structure definitions.

Key Components:

  - Event: one active event from the metadata store
  - CityReportRow, AgeReportRow, GenderReportRow: normalized report rows
  - ReportTable: typed, ordered table of report rows with column names
  - APIResponse: standardized API response wrapper

Report tables never carry a nil Rows slice. An empty table means the
analytics service had no data for the selection, not that a call failed.

Usage Example:

	import "github.com/tomtom215/audiencia/internal/models"

	event := models.Event{
	    EventID:   "e-1",
	    Name:      "Alpha Fest",
	    Subdomain: "alpha",
	}
	host := event.Hostname("example.com") // "alpha.example.com"

Thread Safety:

Models are plain value types and carry no synchronization. Tables returned
from the cache are shared between callers and must be treated as read-only.
*/
package models
