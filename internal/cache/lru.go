// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache provides the two bounded cache shapes spec.md §4.7 requires:
a capacity-bounded LRU and an age-bounded TTL cache. Both are thin,
teacher-style wrappers (construct + configure + validate — see
internal/pgdriver/pool.go for the pattern this follows) around established
libraries rather than hand-rolled eviction logic.
*/
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// BoundedLRU is a generic, capacity-bounded, least-recently-used cache.
// Insertion-order is updated on access: Get promotes an entry to
// most-recently-used, so the next insertion at capacity evicts a different
// entry (spec.md §8, scenario 1).
type BoundedLRU[K comparable, V any] struct {
	inner    *lru.Cache[K, V]
	capacity int
}

// NewBoundedLRU constructs a [BoundedLRU] with the given capacity.
// capacity must be > 0 (spec.md §3 invariant).
func NewBoundedLRU[K comparable, V any](capacity int) (*BoundedLRU[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache: capacity must be > 0, got %d", capacity)
	}
	inner, err := lru.New[K, V](capacity)
	if err != nil {
		return nil, fmt.Errorf("cache: failed to construct LRU: %w", err)
	}
	return &BoundedLRU[K, V]{inner: inner, capacity: capacity}, nil
}

// Get returns the cached value for key, promoting it to most-recently-used.
func (c *BoundedLRU[K, V]) Get(key K) (V, bool) {
	return c.inner.Get(key)
}

// Add inserts or updates key, evicting the least-recently-used entry if the
// cache is at capacity.
func (c *BoundedLRU[K, V]) Add(key K, value V) {
	c.inner.Add(key, value)
}

// Remove deletes key if present.
func (c *BoundedLRU[K, V]) Remove(key K) {
	c.inner.Remove(key)
}

// Len returns the current number of cached entries.
func (c *BoundedLRU[K, V]) Len() int {
	return c.inner.Len()
}

// Capacity returns the configured maximum number of entries.
func (c *BoundedLRU[K, V]) Capacity() int {
	return c.capacity
}

// Keys returns every cached key, least-recently-used first.
func (c *BoundedLRU[K, V]) Keys() []K {
	return c.inner.Keys()
}
