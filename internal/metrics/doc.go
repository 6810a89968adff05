// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3857/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Requests rejected by the rate limiter (counter)

Catalog Metrics:
  - catalog_query_duration_seconds: Metadata store query time (histogram)
    Labels: operation
  - catalog_query_errors_total: Failed metadata store queries (counter)
    Labels: operation, error_type

Analytics Metrics:
  - analytics_request_duration_seconds: RunReport latency (histogram)
    Labels: kind
  - analytics_request_errors_total: Failed RunReport calls (counter)
    Labels: kind, error_type
  - report_rows_total: Normalized rows returned (counter)
    Labels: kind
  - report_degraded_total: Reports replaced by an empty table (counter)
    Labels: kind

Cache Metrics:
  - cache_hits_total, cache_misses_total (counter)
    Labels: cache
  - cache_invalidations_total (counter)
    Labels: cache

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge), 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_consecutive_failures: Consecutive failures (gauge)
  - circuit_breaker_state_transitions_total: State changes (counter)

# Usage

	start := time.Now()
	resp, err := runner.RunReport(ctx, req)
	metrics.RecordAnalyticsRequest("city", time.Since(start), err)
*/
package metrics
