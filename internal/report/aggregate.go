// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package report

import (
	"sort"

	"github.com/tomtom215/audiencia/internal/models"
)

// DefaultCountry is the country whose regions the boundary dataset covers.
const DefaultCountry = "Mexico"

// AggregateByRegion sums buyers per region over the rows of one country,
// sorted by region name. An empty country sums every row.
func AggregateByRegion(table models.ReportTable[models.CityReportRow], country string) []models.RegionTotal {
	totals := make(map[string]int)
	for _, row := range table.Rows {
		if country != "" && row.Country != country {
			continue
		}
		totals[row.Region] += row.Buyers
	}

	out := make([]models.RegionTotal, 0, len(totals))
	for region, buyers := range totals {
		out = append(out, models.RegionTotal{Region: region, Buyers: buyers})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out
}
