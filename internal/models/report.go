// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package models

import (
	"fmt"
	"slices"
)

// ReportKind identifies one of the three buyer reports.
type ReportKind string

const (
	ReportKindCity   ReportKind = "city"
	ReportKindAge    ReportKind = "age"
	ReportKindGender ReportKind = "gender"
)

// ReportKinds lists every kind in the order reports are presented.
var ReportKinds = []ReportKind{ReportKindCity, ReportKindAge, ReportKindGender}

// ParseReportKind converts a string into a ReportKind.
func ParseReportKind(s string) (ReportKind, error) {
	switch k := ReportKind(s); k {
	case ReportKindCity, ReportKindAge, ReportKindGender:
		return k, nil
	default:
		return "", fmt.Errorf("unknown report kind %q", s)
	}
}

// CityReportRow is one row of the geographic buyer report.
type CityReportRow struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Buyers  int    `json:"buyers"`
}

// AgeReportRow is one row of the age bracket buyer report.
type AgeReportRow struct {
	AgeBracket string `json:"age_bracket"`
	Buyers     int    `json:"buyers"`
}

// GenderReportRow is one row of the gender buyer report.
type GenderReportRow struct {
	Gender string `json:"gender"`
	Buyers int    `json:"buyers"`
}

// ReportRow is the set of row types a ReportTable can hold.
type ReportRow interface {
	CityReportRow | AgeReportRow | GenderReportRow
}

// ReportTable is an ordered table of normalized report rows.
// Rows preserves the order returned by the analytics service.
type ReportTable[T ReportRow] struct {
	Kind    ReportKind `json:"kind"`
	Columns []string   `json:"columns"`
	Rows    []T        `json:"rows"`
}

// NewReportTable returns an empty table with a non-nil Rows slice.
func NewReportTable[T ReportRow](kind ReportKind, columns []string, capacity int) ReportTable[T] {
	return ReportTable[T]{
		Kind:    kind,
		Columns: columns,
		Rows:    make([]T, 0, capacity),
	}
}

// Len returns the number of rows.
func (t *ReportTable[T]) Len() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table carries no rows.
func (t *ReportTable[T]) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Clone returns a copy whose Columns and Rows share no memory with t.
//
//nolint:gocritic // value receiver so the method expression fits WithClone
func (t ReportTable[T]) Clone() ReportTable[T] {
	t.Columns = slices.Clone(t.Columns)
	t.Rows = slices.Clone(t.Rows)
	return t
}

// BuyerReport bundles the three report tables for one selection.
type BuyerReport struct {
	Hostnames []string                     `json:"hostnames"`
	City      ReportTable[CityReportRow]   `json:"city"`
	Age       ReportTable[AgeReportRow]    `json:"age"`
	Gender    ReportTable[GenderReportRow] `json:"gender"`
	// Degraded lists the kinds that fell back to an empty table because the
	// analytics service was unreachable.
	Degraded []ReportKind `json:"degraded,omitempty"`
}

// RegionTotal is the buyer count summed over one region of one country.
type RegionTotal struct {
	Region string `json:"region"`
	Buyers int    `json:"buyers"`
}

// OrganizerSummary describes an organizer as shown alongside their events.
type OrganizerSummary struct {
	OrganizerID   string   `json:"organizer_id"`
	OrganizerName string   `json:"organizer_name"`
	Email         string   `json:"email"`
	Categories    []string `json:"categories"`
	EventCount    int      `json:"event_count"`
}
