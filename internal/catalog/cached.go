// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package catalog

import (
	"context"
	"slices"

	"github.com/tomtom215/audiencia/internal/cache"
	"github.com/tomtom215/audiencia/internal/models"
)

// CachedCatalog memoizes ListActiveEvents per organizer id.
// Failures are not cached, so an unavailable store is retried on the next call.
type CachedCatalog struct {
	next Lister
	memo *cache.Memo[[]models.Event]
}

// NewCached wraps next with a memo stored in store under "catalog:{organizerID}".
// Every call gets its own copy of the event slice.
func NewCached(next Lister, store cache.Cacher) *CachedCatalog {
	return &CachedCatalog{
		next: next,
		memo: cache.NewMemo[[]models.Event]("catalog", "catalog", store, cache.WithClone(slices.Clone[[]models.Event])),
	}
}

// ListActiveEvents implements Lister.
func (c *CachedCatalog) ListActiveEvents(ctx context.Context, organizerID string) ([]models.Event, error) {
	events, _, err := c.memo.Do(ctx, c.memo.Key(organizerID), func(ctx context.Context) ([]models.Event, error) {
		return c.next.ListActiveEvents(ctx, organizerID)
	})
	if events == nil {
		events = []models.Event{}
	}
	return events, err
}

// Invalidate drops every memoized organizer listing.
func (c *CachedCatalog) Invalidate() int {
	return c.memo.Invalidate()
}
