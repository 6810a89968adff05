// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package cache

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/audiencia/internal/metrics"
)

// Memo memoizes a remote call per key on top of a Cacher.
//
// Concurrent calls for the same missing key share one execution of fn.
// Results are stored only when fn returns a nil error, so failures are
// retried on the next call.
type Memo[T any] struct {
	name      string
	namespace string
	store     Cacher
	group     singleflight.Group
	clone     func(T) T
}

// MemoOption configures a Memo.
type MemoOption[T any] func(*Memo[T])

// WithClone makes Do hand every caller clone(v) instead of the stored value,
// so callers may modify what they get without touching the cache.
func WithClone[T any](clone func(T) T) MemoOption[T] {
	return func(m *Memo[T]) { m.clone = clone }
}

// NewMemo creates a memoizer. name labels the cache metrics; namespace
// prefixes every key so Invalidate only touches this memo's entries.
func NewMemo[T any](name, namespace string, store Cacher, opts ...MemoOption[T]) *Memo[T] {
	m := &Memo[T]{
		name:      name,
		namespace: namespace,
		store:     store,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key returns the cache key for the given parts within this memo's namespace.
func (m *Memo[T]) Key(parts ...string) string {
	return Key(m.namespace, parts...)
}

// Do returns the cached value for key, or calls fn and caches its result.
// The boolean reports whether the value came from the cache.
//
// fn runs on ctx without its cancellation, so it must bound its own work.
// Each caller waits only until its own ctx ends and then gets ctx.Err();
// the load continues for the callers still waiting.
//
// On error Do returns whatever value fn returned alongside the error, so
// callers may hand back a fallback value without it being cached.
func (m *Memo[T]) Do(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	if v, ok := m.store.Get(key); ok {
		if typed, ok := v.(T); ok {
			metrics.RecordCacheLookup(m.name, true)
			return m.copyOf(typed), true, nil
		}
		// Wrong type under our namespace; drop it and refetch.
		m.store.Delete(key)
	}
	metrics.RecordCacheLookup(m.name, false)

	loadCtx := context.WithoutCancel(ctx)
	ch := m.group.DoChan(key, func() (interface{}, error) {
		value, err := fn(loadCtx)
		if err == nil {
			m.store.Set(key, value)
		}
		// The error travels inside the result so fallback values survive.
		return memoResult[T]{value: value, err: err}, nil
	})

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		r, ok := res.Val.(memoResult[T])
		if !ok {
			return zero, false, fmt.Errorf("memo %s: unexpected result type %T", m.name, res.Val)
		}
		return m.copyOf(r.value), false, r.err
	}
}

func (m *Memo[T]) copyOf(v T) T {
	if m.clone == nil {
		return v
	}
	return m.clone(v)
}

// memoResult carries fn's value and error through singleflight.
type memoResult[T any] struct {
	value T
	err   error
}

// Invalidate removes every entry in this memo's namespace.
func (m *Memo[T]) Invalidate() int {
	metrics.RecordCacheInvalidation(m.name)
	return m.store.DeletePrefix(m.namespace + ":")
}
