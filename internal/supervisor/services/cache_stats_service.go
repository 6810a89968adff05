// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package services

import (
	"context"
	"time"

	"github.com/tomtom215/audiencia/internal/cache"
	"github.com/tomtom215/audiencia/internal/metrics"
)

const defaultStatsInterval = 30 * time.Second

// CacheStatsSource is implemented by *cache.Cache.
type CacheStatsSource interface {
	Len() int
	GetStats() cache.Stats
}

// CacheStatsService publishes cache gauges on a fixed interval.
type CacheStatsService struct {
	source   CacheStatsSource
	interval time.Duration
}

// NewCacheStatsService creates the service. A non-positive interval uses 30s.
func NewCacheStatsService(source CacheStatsSource, interval time.Duration) *CacheStatsService {
	if interval <= 0 {
		interval = defaultStatsInterval
	}
	return &CacheStatsService{source: source, interval: interval}
}

// Serve implements suture.Service.
func (s *CacheStatsService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.publish()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.publish()
		}
	}
}

func (s *CacheStatsService) publish() {
	stats := s.source.GetStats()
	metrics.RecordCacheSize(s.source.Len(), stats.Evictions)
}

// String implements fmt.Stringer for supervisor logs.
func (s *CacheStatsService) String() string {
	return "cache-stats"
}
