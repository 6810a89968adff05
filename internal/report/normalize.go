// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/audiencia/internal/analytics"
	"github.com/tomtom215/audiencia/internal/models"
)

// ErrMalformedResponse is wrapped by every error caused by a response that
// does not have the shape the report kind expects.
var ErrMalformedResponse = errors.New("malformed analytics response")

// Normalize converts a runReport response into a typed table. Rows keep the
// response order. On error the returned table is empty but has its columns.
func Normalize[T models.ReportRow](resp *analytics.RunReportResponse, spec KindSpec[T]) (models.ReportTable[T], error) {
	if resp == nil {
		return spec.emptyTable(0), fmt.Errorf("%w: %s report: nil response", ErrMalformedResponse, spec.kind)
	}
	if err := checkHeaders(resp.DimensionHeaders, spec.dimensions); err != nil {
		return spec.emptyTable(0), fmt.Errorf("%w: %s report: %w", ErrMalformedResponse, spec.kind, err)
	}

	table := spec.emptyTable(len(resp.Rows))
	for i, row := range resp.Rows {
		if len(row.DimensionValues) != len(spec.dimensions) {
			return spec.emptyTable(0), fmt.Errorf("%w: %s report: row %d has %d dimension values, want %d",
				ErrMalformedResponse, spec.kind, i, len(row.DimensionValues), len(spec.dimensions))
		}
		if len(row.MetricValues) == 0 {
			return spec.emptyTable(0), fmt.Errorf("%w: %s report: row %d has no metric value",
				ErrMalformedResponse, spec.kind, i)
		}

		buyers, err := parseCount(row.MetricValues[0].Value)
		if err != nil {
			return spec.emptyTable(0), fmt.Errorf("%w: %s report: row %d: %w", ErrMalformedResponse, spec.kind, i, err)
		}

		dims := make([]string, len(row.DimensionValues))
		for j, v := range row.DimensionValues {
			dims[j] = v.Value
		}
		table.Rows = append(table.Rows, spec.build(dims, buyers))
	}
	return table, nil
}

// checkHeaders verifies the dimension headers when the response carries them.
func checkHeaders(headers []analytics.Header, want []string) error {
	if len(headers) == 0 {
		return nil
	}
	if len(headers) != len(want) {
		return fmt.Errorf("got %d dimension headers, want %d", len(headers), len(want))
	}
	for i, h := range headers {
		if h.Name != want[i] {
			return fmt.Errorf("dimension header %d is %q, want %q", i, h.Name, want[i])
		}
	}
	return nil
}

// parseCount parses a metric value as a non-negative integer.
func parseCount(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("metric value %q is not an integer", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("metric value %q is negative", raw)
	}
	return n, nil
}
