// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package api exposes the event catalog and buyer reports over HTTP.

Routing uses chi with production middleware from the chi ecosystem
(go-chi/cors, go-chi/httprate). Every response uses the models.APIResponse
envelope.

Endpoints:

	GET    /api/v1/health/live
	GET    /api/v1/health/ready
	GET    /api/v1/organizers/{organizerID}
	GET    /api/v1/organizers/{organizerID}/events?category=
	POST   /api/v1/reports
	GET    /api/v1/reports/regions?hostname=&country=
	GET    /api/v1/reports/{kind}?hostname=
	DELETE /api/v1/cache
	GET    /metrics

Report selection:

POST /api/v1/reports accepts either explicit hostnames or events resolved
through the catalog:

	{"hostnames": ["alpha.example.com", "beta.example.com"]}
	{"organizer_id": "42", "event_ids": ["alpha", "beta"]}
	{"organizer_id": "42", "all": true, "category": "Music"}

Error mapping:

  - 400 VALIDATION_ERROR: bad body, query or path values
  - 404 NOT_FOUND: unknown report kind or event id
  - 429 RATE_LIMIT_EXCEEDED: httprate rejection
  - 502 MALFORMED_RESPONSE: the analytics service broke its response shape
  - 502 ANALYTICS_ERROR: any other non-transient analytics failure
  - 503 CATALOG_UNAVAILABLE: the metadata store could not be queried

An unreachable analytics service is not an error. The affected tables come
back empty and metadata.degraded is set.
*/
package api
