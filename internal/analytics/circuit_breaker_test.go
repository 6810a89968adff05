// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package analytics

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/audiencia/internal/config"
	"github.com/tomtom215/audiencia/internal/metrics"
)

type fakeRunner struct {
	calls atomic.Int32
	err   error
}

func (f *fakeRunner) RunReport(context.Context, *RunReportRequest) (*RunReportResponse, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &RunReportResponse{}, nil
}

func breakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 3,
	}
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	name := "test-opens"
	inner := &fakeRunner{err: &APIError{StatusCode: http.StatusServiceUnavailable, Message: "down"}}
	cbc := NewCircuitBreakerClient(name, inner, breakerConfig())

	for i := 0; i < 3; i++ {
		if _, err := cbc.RunReport(context.Background(), &RunReportRequest{}); err == nil {
			t.Fatal("expected failure")
		}
	}
	if cbc.State() != "open" {
		t.Fatalf("state = %s, want open", cbc.State())
	}

	_, err := cbc.RunReport(context.Background(), &RunReportRequest{})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
	if !IsUnavailable(err) {
		t.Error("open circuit should be reported as unavailable")
	}
	if got := inner.calls.Load(); got != 3 {
		t.Errorf("inner calls = %d, want 3", got)
	}

	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(name)); got != 2 {
		t.Errorf("state gauge = %v, want 2 (open)", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected")); got != 1 {
		t.Errorf("rejected counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerTransitions.WithLabelValues(name, "closed", "open")); got != 1 {
		t.Errorf("closed->open transitions = %v, want 1", got)
	}
}

func TestCircuitBreakerIgnoresClientErrors(t *testing.T) {
	t.Parallel()

	inner := &fakeRunner{err: &APIError{StatusCode: http.StatusBadRequest, Message: "bad dimension"}}
	cbc := NewCircuitBreakerClient("test-client-errors", inner, breakerConfig())

	for i := 0; i < 5; i++ {
		_, _ = cbc.RunReport(context.Background(), &RunReportRequest{})
	}
	if cbc.State() != "closed" {
		t.Errorf("client errors tripped the breaker: state = %s", cbc.State())
	}
	if got := inner.calls.Load(); got != 5 {
		t.Errorf("inner calls = %d, want 5", got)
	}
}

func TestCircuitBreakerSuccessResetsFailures(t *testing.T) {
	t.Parallel()

	name := "test-success"
	inner := &fakeRunner{}
	cbc := NewCircuitBreakerClient(name, inner, breakerConfig())

	if _, err := cbc.RunReport(context.Background(), &RunReportRequest{}); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues(name, "success")); got != 1 {
		t.Errorf("success counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name)); got != 0 {
		t.Errorf("consecutive failures = %v, want 0", got)
	}
}
