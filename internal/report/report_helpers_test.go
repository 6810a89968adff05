// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package report

import (
	"context"
	"sync"

	"github.com/tomtom215/audiencia/internal/analytics"
)

// fakeRunner answers runReport requests from canned responses keyed by the
// first requested dimension, and records every request.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]*analytics.RunReportResponse
	errs      map[string]error
	requests  []*analytics.RunReportRequest
	block     bool
	// gate, when set, holds every request until it is closed.
	gate chan struct{}
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		responses: make(map[string]*analytics.RunReportResponse),
		errs:      make(map[string]error),
	}
}

func (f *fakeRunner) RunReport(ctx context.Context, req *analytics.RunReportRequest) (*analytics.RunReportResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	block, gate := f.block, f.gate
	dim := ""
	if len(req.Dimensions) > 0 {
		dim = req.Dimensions[0].Name
	}
	resp, err := f.responses[dim], f.errs[dim]
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return &analytics.RunReportResponse{}, nil
	}
	return resp, nil
}

func (f *fakeRunner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// response builds a runReport response from rows of dimension values
// followed by the metric value.
func response(rows ...[]string) *analytics.RunReportResponse {
	resp := &analytics.RunReportResponse{RowCount: len(rows)}
	for _, cells := range rows {
		row := analytics.Row{}
		for _, v := range cells[:len(cells)-1] {
			row.DimensionValues = append(row.DimensionValues, analytics.Value{Value: v})
		}
		row.MetricValues = []analytics.Value{{Value: cells[len(cells)-1]}}
		resp.Rows = append(resp.Rows, row)
	}
	return resp
}
