// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package report

import (
	"github.com/tomtom215/audiencia/internal/analytics"
	"github.com/tomtom215/audiencia/internal/config"
)

// Query constants shared by every report kind.
const (
	BuyersMetric      = "totalUsers"
	PagePathField     = "pagePath"
	HostNameField     = "hostName"
	DefaultPathMarker = "/finish"
	DefaultStartDate  = "365daysAgo"
	DefaultEndDate    = "today"
)

// QueryOptions holds the parts of a report query that do not depend on the
// kind or the selection.
type QueryOptions struct {
	PropertyID     string
	PagePathMarker string
	StartDate      string
	EndDate        string
}

// NewQueryOptions derives query options from configuration.
func NewQueryOptions(propertyID string, cfg *config.ReportConfig) QueryOptions {
	return QueryOptions{
		PropertyID:     propertyID,
		PagePathMarker: cfg.PagePathMarker,
		StartDate:      cfg.StartDate,
		EndDate:        cfg.EndDate,
	}
}

func (o QueryOptions) withDefaults() QueryOptions {
	if o.PagePathMarker == "" {
		o.PagePathMarker = DefaultPathMarker
	}
	if o.StartDate == "" {
		o.StartDate = DefaultStartDate
	}
	if o.EndDate == "" {
		o.EndDate = DefaultEndDate
	}
	return o
}

func buildRequest(dimensionNames []string, sel Selection, opts QueryOptions) *analytics.RunReportRequest {
	opts = opts.withDefaults()

	dimensions := make([]analytics.Dimension, len(dimensionNames))
	for i, name := range dimensionNames {
		dimensions[i] = analytics.Dimension{Name: name}
	}

	req := &analytics.RunReportRequest{
		Dimensions: dimensions,
		Metrics:    []analytics.Metric{{Name: BuyersMetric}},
		DateRanges: []analytics.DateRange{{StartDate: opts.StartDate, EndDate: opts.EndDate}},
		DimensionFilter: analytics.And(
			analytics.StringContains(PagePathField, opts.PagePathMarker),
			analytics.InList(HostNameField, sel.Hostnames()),
		),
	}
	if opts.PropertyID != "" {
		req.Property = analytics.PropertyName(opts.PropertyID)
	}
	return req
}
