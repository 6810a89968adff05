// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package cache provides thread-safe in-memory caching with TTL support.

Remote lookups (catalog queries, analytics reports) are slow and the
underlying data changes at most daily, so results are kept for one session
(12 hours by default) and can be dropped manually.

# Overview

The package provides:
  - Cache: thread-safe TTL store (sync.RWMutex) with hit/miss statistics,
    lazy expiration on Get and a background sweep that stops on Close
  - Memo: typed memoizer over a Cacher; concurrent identical calls share a
    single execution (golang.org/x/sync/singleflight) and errors are never
    stored
  - Key: readable, order-independent keys such as
    "report:city:a.example.com,b.example.com"; parts containing a comma
    are hashed instead

# Usage Example

	store := cache.New(12 * time.Hour)
	defer store.Close()

	events := cache.NewMemo[[]models.Event]("catalog", "catalog", store,
	    cache.WithClone(slices.Clone[[]models.Event]))
	list, cached, err := events.Do(ctx, events.Key(organizerID), func(ctx context.Context) ([]models.Event, error) {
	    return catalog.ListActiveEvents(ctx, organizerID)
	})

	// Manual invalidation
	events.Invalidate()

# Thread Safety

All operations are safe for concurrent use. The shared load in Memo.Do runs
without the caller's cancellation; each caller stops waiting when its own
context ends. Without WithClone, cached values are shared between callers
and must not be mutated.
*/
package cache
