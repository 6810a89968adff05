// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package catalog lists an organizer's active events from the metadata store.

# Overview

Catalog.ListActiveEvents runs one parameterized query:

	SELECT event_id, organizer_id, name, category, subcategory, subdomain,
	       organizer_name, email, started_at
	FROM EVENTS
	WHERE organizer_id = ? AND status = 'active'
	ORDER BY name, started_at

The organizer id is always bound as a parameter. The relation name comes
from configuration and is validated as a plain identifier at startup.

# Failure Handling

Any connectivity or query failure yields an empty, non-nil slice together
with an error wrapping ErrUnavailable, so callers can tell "no events" from
"store down". ListActiveEventsOrEmpty logs the failure and drops the error
for callers that only render lists.

# Helpers

Summarize, FilterByCategory and Hostnames derive the organizer header, the
category filter and the analytics hostnames from a listed slice.

# Caching

CachedCatalog memoizes ListActiveEvents per organizer id for the session
TTL of the shared cache.
*/
package catalog
