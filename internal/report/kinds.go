// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package report

import (
	"github.com/tomtom215/audiencia/internal/analytics"
	"github.com/tomtom215/audiencia/internal/models"
)

// Labels used when a dimension value is missing.
const (
	NotSetLabel          = "(not set)"
	UnknownAgeLabel      = "Desconocida"
	UnknownGenderLabel   = "Desconocido"
	buyersColumn         = "COMPRADORES"
	unknownDimensionName = "unknown"
)

// regionNames aligns GA4 region names with the state names of the Mexico
// boundary dataset.
var regionNames = map[string]string{
	"Mexico City":     "Ciudad de México",
	"State of Mexico": "México",
	"Nuevo Leon":      "Nuevo León",
	"Yucatan":         "Yucatán",
	"Michoacan":       "Michoacán",
	"Queretaro":       "Querétaro",
	"San Luis Potosi": "San Luis Potosí",
}

var ageLabels = map[string]string{
	unknownDimensionName: UnknownAgeLabel,
}

var genderLabels = map[string]string{
	unknownDimensionName: UnknownGenderLabel,
	"female":             "Femenino",
	"male":               "Masculino",
}

// KindSpec describes one report kind: the dimensions it queries, the
// columns it presents and how a row is built from dimension values.
type KindSpec[T models.ReportRow] struct {
	kind       models.ReportKind
	dimensions []string
	columns    []string
	build      func(dims []string, buyers int) T
}

// Columns returns a copy of the presented column names.
func (s KindSpec[T]) Columns() []string { return append([]string(nil), s.columns...) }

// request builds the runReport request for this kind over sel.
func (s KindSpec[T]) request(sel Selection, opts QueryOptions) *analytics.RunReportRequest {
	return buildRequest(s.dimensions, sel, opts)
}

// emptyTable returns a table with columns and no rows.
func (s KindSpec[T]) emptyTable(capacity int) models.ReportTable[T] {
	return models.NewReportTable[T](s.kind, s.Columns(), capacity)
}

// CitySpec is the geography report: city, region and country.
var CitySpec = KindSpec[models.CityReportRow]{
	kind:       models.ReportKindCity,
	dimensions: []string{"city", "region", "country"},
	columns:    []string{"CIUDAD", "ESTADO", "PAIS", buyersColumn},
	build: func(dims []string, buyers int) models.CityReportRow {
		return models.CityReportRow{
			City:    orNotSet(dims[0]),
			Region:  canonicalize(regionNames, orNotSet(dims[1])),
			Country: orNotSet(dims[2]),
			Buyers:  buyers,
		}
	},
}

// AgeSpec is the age bracket report.
var AgeSpec = KindSpec[models.AgeReportRow]{
	kind:       models.ReportKindAge,
	dimensions: []string{"userAgeBracket"},
	columns:    []string{"EDAD", buyersColumn},
	build: func(dims []string, buyers int) models.AgeReportRow {
		return models.AgeReportRow{
			AgeBracket: canonicalize(ageLabels, orUnknown(dims[0])),
			Buyers:     buyers,
		}
	},
}

// GenderSpec is the gender report.
var GenderSpec = KindSpec[models.GenderReportRow]{
	kind:       models.ReportKindGender,
	dimensions: []string{"userGender"},
	columns:    []string{"GENERO", buyersColumn},
	build: func(dims []string, buyers int) models.GenderReportRow {
		return models.GenderReportRow{
			Gender: canonicalize(genderLabels, orUnknown(dims[0])),
			Buyers: buyers,
		}
	},
}

func canonicalize(table map[string]string, value string) string {
	if label, ok := table[value]; ok {
		return label
	}
	return value
}

func orNotSet(v string) string {
	if v == "" {
		return NotSetLabel
	}
	return v
}

func orUnknown(v string) string {
	if v == "" {
		return unknownDimensionName
	}
	return v
}
