// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/audiencia/internal/analytics"
	"github.com/tomtom215/audiencia/internal/logging"
	"github.com/tomtom215/audiencia/internal/metrics"
	"github.com/tomtom215/audiencia/internal/models"
)

// DefaultTimeout bounds one report query when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// ErrUnavailable is wrapped when the analytics service timed out or could not
// be reached. The accompanying table is empty.
var ErrUnavailable = errors.New("analytics service unavailable")

// Fetcher fetches the three buyer reports. Pipeline and CachedPipeline
// implement it.
type Fetcher interface {
	FetchCityReport(ctx context.Context, sel Selection) (models.ReportTable[models.CityReportRow], error)
	FetchAgeReport(ctx context.Context, sel Selection) (models.ReportTable[models.AgeReportRow], error)
	FetchGenderReport(ctx context.Context, sel Selection) (models.ReportTable[models.GenderReportRow], error)
}

// Pipeline queries the analytics service and normalizes the responses.
type Pipeline struct {
	runner  analytics.Runner
	opts    QueryOptions
	timeout time.Duration
}

// NewPipeline creates a pipeline. A timeout of zero uses DefaultTimeout.
func NewPipeline(runner analytics.Runner, opts QueryOptions, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{runner: runner, opts: opts, timeout: timeout}
}

// FetchCityReport returns buyers per city, region and country.
func (p *Pipeline) FetchCityReport(ctx context.Context, sel Selection) (models.ReportTable[models.CityReportRow], error) {
	return fetch(ctx, p, CitySpec, sel)
}

// FetchAgeReport returns buyers per age bracket.
func (p *Pipeline) FetchAgeReport(ctx context.Context, sel Selection) (models.ReportTable[models.AgeReportRow], error) {
	return fetch(ctx, p, AgeSpec, sel)
}

// FetchGenderReport returns buyers per gender.
func (p *Pipeline) FetchGenderReport(ctx context.Context, sel Selection) (models.ReportTable[models.GenderReportRow], error) {
	return fetch(ctx, p, GenderSpec, sel)
}

// fetch runs one report kind. An empty selection returns an empty table
// without calling the runner.
func fetch[T models.ReportRow](ctx context.Context, p *Pipeline, spec KindSpec[T], sel Selection) (models.ReportTable[T], error) {
	if sel.IsEmpty() {
		return spec.emptyTable(0), nil
	}

	kind := string(spec.kind)
	logger := logging.Ctx(ctx).With().Str("report", kind).Int("hostnames", sel.Len()).Logger()

	queryCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.runner.RunReport(queryCtx, spec.request(sel, p.opts))
	if err != nil {
		metrics.RecordAnalyticsRequest(kind, time.Since(start), err)
		switch {
		case analytics.IsUnavailable(err):
			metrics.RecordReportDegraded(kind)
			logger.Warn().Err(err).Dur("timeout", p.timeout).Msg("Analytics service unavailable, returning empty report")
			return spec.emptyTable(0), fmt.Errorf("%w: %s report: %w", ErrUnavailable, kind, err)
		case errors.Is(err, analytics.ErrDecode):
			logger.Error().Err(err).Msg("Analytics response could not be decoded")
			return spec.emptyTable(0), fmt.Errorf("%w: %s report: %w", ErrMalformedResponse, kind, err)
		default:
			logger.Error().Err(err).Msg("Analytics report request failed")
			return spec.emptyTable(0), fmt.Errorf("%s report: %w", kind, err)
		}
	}

	table, err := Normalize(resp, spec)
	metrics.RecordAnalyticsRequest(kind, time.Since(start), err)
	if err != nil {
		logger.Error().Err(err).Msg("Analytics response has an unexpected shape")
		return table, err
	}

	metrics.RecordReportRows(kind, table.Len())
	logger.Debug().Int("rows", table.Len()).Dur("duration", time.Since(start)).Msg("Report fetched")
	return table, nil
}
