// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package report

import (
	"reflect"
	"testing"

	"github.com/tomtom215/audiencia/internal/models"
)

func TestAggregateByRegion(t *testing.T) {
	t.Parallel()

	table := CitySpec.emptyTable(4)
	table.Rows = append(table.Rows,
		models.CityReportRow{City: "Monterrey", Region: "Nuevo León", Country: "Mexico", Buyers: 4},
		models.CityReportRow{City: "San Pedro", Region: "Nuevo León", Country: "Mexico", Buyers: 2},
		models.CityReportRow{City: "Coyoacán", Region: "Ciudad de México", Country: "Mexico", Buyers: 9},
		models.CityReportRow{City: "Austin", Region: "Texas", Country: "United States", Buyers: 5},
	)

	got := AggregateByRegion(table, DefaultCountry)
	want := []models.RegionTotal{
		{Region: "Ciudad de México", Buyers: 9},
		{Region: "Nuevo León", Buyers: 6},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateByRegion() = %+v, want %+v", got, want)
	}

	if all := AggregateByRegion(table, ""); len(all) != 3 {
		t.Errorf("all countries = %+v", all)
	}
	if none := AggregateByRegion(CitySpec.emptyTable(0), DefaultCountry); none == nil || len(none) != 0 {
		t.Errorf("empty table = %#v", none)
	}
}
