// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: accepts or generates an X-Request-ID and threads it through
    the logging context so every log line for a request carries it
  - PrometheusMetrics: request count, latency and in-flight instrumentation
    labelled by chi route pattern rather than raw path
  - AccessLog: one structured zerolog line per completed request

Middleware Stack:

The router installs these as standard func(http.Handler) http.Handler
middleware:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

Route patterns keep the endpoint label cardinality bounded. A request for
/api/v1/organizers/42/events is recorded under
/api/v1/organizers/{organizerID}/events.
*/
package middleware
