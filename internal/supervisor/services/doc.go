// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package services adapts long-running components to suture.Service.

Each wrapper implements

	type Service interface {
	    Serve(ctx context.Context) error
	}

returns when ctx is canceled, and names itself through fmt.Stringer so
supervisor events identify it.

HTTPServerService binds the listener itself, so an address already in use
fails the first Serve call with a clear error, then drains connections with
http.Server.Shutdown on cancellation.

CacheStatsService samples the session cache on a ticker and publishes its
size and eviction count as Prometheus gauges.
*/
package services
