// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package analytics is the client for the web analytics reporting service
(GA4 Data API v1beta, runReport method).

Client Features:
  - REST/JSON transport over an injected, already-authenticated *http.Client
  - Client-side request pacing with golang.org/x/time/rate
  - Retry with exponential backoff on HTTP 429 and 503, honoring Retry-After
  - Circuit breaker wrapper (sony/gobreaker) with Prometheus state metrics

Authentication:

NewHTTPClient builds the *http.Client from a service account file or from
application default credentials through golang.org/x/oauth2/google. Tests pass
a plain client pointed at an httptest server instead.

Usage:

	httpClient, err := analytics.NewHTTPClient(ctx, &cfg.Analytics)
	if err != nil {
	    return err
	}
	runner := analytics.NewCircuitBreakerClient(analytics.NewClient(&cfg.Analytics, httpClient), cfg.Analytics.CircuitBreaker)
	resp, err := runner.RunReport(ctx, req)

Errors:

Non-2xx responses become *APIError. IsUnavailable reports whether an error
means the service could not be reached in time (timeouts, network failures,
5xx, exhausted 429 retries, open circuit); callers degrade on those.
ErrDecode marks a 200 response whose body is not a runReport payload.
*/
package analytics
