// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package cache

// Cacher is the store behind Memo.
type Cacher interface {
	// Get returns the value for key if present and not expired.
	Get(key string) (interface{}, bool)

	// Set stores value with the store's default TTL.
	Set(key string, value interface{})

	// Delete removes key. Missing keys are ignored.
	Delete(key string)

	// DeletePrefix removes every key starting with prefix and returns the count.
	DeletePrefix(prefix string) int
}

var _ Cacher = (*Cache)(nil)
