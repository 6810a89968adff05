// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package analytics

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/audiencia/internal/config"
	"github.com/tomtom215/audiencia/internal/logging"
	"github.com/tomtom215/audiencia/internal/metrics"
)

// DefaultBreakerName labels the breaker in logs and metrics.
const DefaultBreakerName = "ga4-data-api"

// ErrCircuitOpen wraps requests rejected without reaching the service.
var ErrCircuitOpen = errors.New("analytics circuit open")

// CircuitBreakerClient wraps a Runner with a circuit breaker so a failing
// analytics service is not hammered by every report request.
//
// Only unavailability (see IsUnavailable) counts as a failure. Client errors
// such as INVALID_ARGUMENT and undecodable bodies pass through without
// tripping the breaker; caller cancellation is excluded from the counts.
type CircuitBreakerClient struct {
	next Runner
	cb   *gobreaker.CircuitBreaker[*RunReportResponse]
	name string
}

// NewCircuitBreakerClient wraps next. The breaker opens after
// cfg.FailureThreshold consecutive failures, stays open for cfg.Timeout, then
// lets cfg.MaxRequests trial requests through in half-open state.
func NewCircuitBreakerClient(name string, next Runner, cfg config.CircuitBreakerConfig) *CircuitBreakerClient {
	if name == "" {
		name = DefaultBreakerName
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*RunReportResponse](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures < threshold {
				return false
			}
			logging.Warn().
				Str("breaker", name).
				Uint32("consecutive_failures", counts.ConsecutiveFailures).
				Msg("[CIRCUIT BREAKER] Opening circuit")
			return true
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: func(err error) bool {
			return !IsUnavailable(err)
		},
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	})

	return &CircuitBreakerClient{next: next, cb: cb, name: name}
}

// RunReport implements Runner.
func (c *CircuitBreakerClient) RunReport(ctx context.Context, req *RunReportRequest) (*RunReportResponse, error) {
	resp, err := c.cb.Execute(func() (*RunReportResponse, error) {
		return c.next.RunReport(ctx, req)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("breaker", c.name).Msg("[CIRCUIT BREAKER] Request rejected")
		return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(c.cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)
	return resp, nil
}

// State returns the breaker state ("closed", "half-open" or "open").
func (c *CircuitBreakerClient) State() string {
	return c.cb.State().String()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
