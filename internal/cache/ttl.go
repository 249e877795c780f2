// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"time"

	"github.com/bluele/gcache"
)

// TTL is a generic, age-bounded cache: entries expire a fixed duration after
// insertion regardless of access, independent of the LRU promotion rules in
// [BoundedLRU] (spec.md §4.7 metadata cache: "entries older than
// metadata_ttl_seconds are treated as absent").
type TTL[K comparable, V any] struct {
	inner gcache.Cache
	ttl   time.Duration
}

// NewTTL constructs a [TTL] cache holding up to capacity entries, each
// expiring ttl after insertion.
func NewTTL[K comparable, V any](capacity int, ttl time.Duration) *TTL[K, V] {
	inner := gcache.New(capacity).Simple().Build()
	return &TTL[K, V]{inner: inner, ttl: ttl}
}

// Get returns the cached value for key if present and not yet expired.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	var zero V
	raw, err := c.inner.Get(key)
	if err != nil {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// Set inserts or refreshes key with value, resetting its expiry to ttl from
// now.
func (c *TTL[K, V]) Set(key K, value V) {
	_ = c.inner.SetWithExpire(key, value, c.ttl)
}

// Remove deletes key if present.
func (c *TTL[K, V]) Remove(key K) {
	c.inner.Remove(key)
}

// Len returns the current number of unexpired entries.
func (c *TTL[K, V]) Len() int {
	return c.inner.Len(true)
}

// Purge clears every entry. A connection switch drops only the outgoing
// DSN's entry, through Remove (effect.CacheInvalidate).
func (c *TTL[K, V]) Purge() {
	c.inner.Purge()
}
