// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package report

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/audiencia/internal/models"
)

// FetchAll fetches the three reports for sel and joins them. With parallel
// set the kinds run concurrently.
//
// A kind that fails with ErrUnavailable keeps its empty table and is listed
// in BuyerReport.Degraded; that alone is not an error. Any other failure is
// returned after every kind has finished, together with the partial report.
func FetchAll(ctx context.Context, f Fetcher, sel Selection, parallel bool) (*models.BuyerReport, error) {
	out := &models.BuyerReport{
		Hostnames: sel.Hostnames(),
		City:      CitySpec.emptyTable(0),
		Age:       AgeSpec.emptyTable(0),
		Gender:    GenderSpec.emptyTable(0),
	}

	var mu sync.Mutex
	degrade := func(kind models.ReportKind, err error) error {
		if errors.Is(err, ErrUnavailable) {
			mu.Lock()
			out.Degraded = append(out.Degraded, kind)
			mu.Unlock()
			return nil
		}
		return err
	}

	tasks := []func() error{
		func() error {
			t, err := f.FetchCityReport(ctx, sel)
			out.City = t
			return degrade(models.ReportKindCity, err)
		},
		func() error {
			t, err := f.FetchAgeReport(ctx, sel)
			out.Age = t
			return degrade(models.ReportKindAge, err)
		},
		func() error {
			t, err := f.FetchGenderReport(ctx, sel)
			out.Gender = t
			return degrade(models.ReportKindGender, err)
		},
	}

	var err error
	if parallel {
		var g errgroup.Group
		for _, task := range tasks {
			g.Go(task)
		}
		err = g.Wait()
	} else {
		errs := make([]error, 0, len(tasks))
		for _, task := range tasks {
			errs = append(errs, task())
		}
		err = errors.Join(errs...)
	}

	sortKinds(out.Degraded)
	return out, err
}

// sortKinds orders kinds as in models.ReportKinds.
func sortKinds(kinds []models.ReportKind) {
	rank := make(map[models.ReportKind]int, len(models.ReportKinds))
	for i, k := range models.ReportKinds {
		rank[k] = i
	}
	sort.Slice(kinds, func(i, j int) bool { return rank[kinds[i]] < rank[kinds[j]] })
}
