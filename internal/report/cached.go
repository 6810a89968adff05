// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package report

import (
	"context"

	"github.com/tomtom215/audiencia/internal/cache"
	"github.com/tomtom215/audiencia/internal/models"
)

// CachedPipeline memoizes each report kind per hostname set under
// "report:{kind}:{sorted hostnames}". Failed and degraded fetches are not
// cached.
type CachedPipeline struct {
	next   Fetcher
	city   *cache.Memo[models.ReportTable[models.CityReportRow]]
	age    *cache.Memo[models.ReportTable[models.AgeReportRow]]
	gender *cache.Memo[models.ReportTable[models.GenderReportRow]]
}

// NewCachedPipeline wraps next with memos stored in store. Every call gets
// its own copy of the rows.
func NewCachedPipeline(next Fetcher, store cache.Cacher) *CachedPipeline {
	return &CachedPipeline{
		next: next,
		city: cache.NewMemo[models.ReportTable[models.CityReportRow]]("report", "report:city", store,
			cache.WithClone(models.ReportTable[models.CityReportRow].Clone)),
		age: cache.NewMemo[models.ReportTable[models.AgeReportRow]]("report", "report:age", store,
			cache.WithClone(models.ReportTable[models.AgeReportRow].Clone)),
		gender: cache.NewMemo[models.ReportTable[models.GenderReportRow]]("report", "report:gender", store,
			cache.WithClone(models.ReportTable[models.GenderReportRow].Clone)),
	}
}

// FetchCityReport implements Fetcher.
func (c *CachedPipeline) FetchCityReport(ctx context.Context, sel Selection) (models.ReportTable[models.CityReportRow], error) {
	if sel.IsEmpty() {
		return c.next.FetchCityReport(ctx, sel)
	}
	t, _, err := c.city.Do(ctx, c.city.Key(sel.Hostnames()...), func(ctx context.Context) (models.ReportTable[models.CityReportRow], error) {
		return c.next.FetchCityReport(ctx, sel)
	})
	return t, err
}

// FetchAgeReport implements Fetcher.
func (c *CachedPipeline) FetchAgeReport(ctx context.Context, sel Selection) (models.ReportTable[models.AgeReportRow], error) {
	if sel.IsEmpty() {
		return c.next.FetchAgeReport(ctx, sel)
	}
	t, _, err := c.age.Do(ctx, c.age.Key(sel.Hostnames()...), func(ctx context.Context) (models.ReportTable[models.AgeReportRow], error) {
		return c.next.FetchAgeReport(ctx, sel)
	})
	return t, err
}

// FetchGenderReport implements Fetcher.
func (c *CachedPipeline) FetchGenderReport(ctx context.Context, sel Selection) (models.ReportTable[models.GenderReportRow], error) {
	if sel.IsEmpty() {
		return c.next.FetchGenderReport(ctx, sel)
	}
	t, _, err := c.gender.Do(ctx, c.gender.Key(sel.Hostnames()...), func(ctx context.Context) (models.ReportTable[models.GenderReportRow], error) {
		return c.next.FetchGenderReport(ctx, sel)
	})
	return t, err
}

// Invalidate drops every memoized report and returns the number removed.
func (c *CachedPipeline) Invalidate() int {
	return c.city.Invalidate() + c.age.Invalidate() + c.gender.Invalidate()
}
