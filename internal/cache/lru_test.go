// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pgview/internal/cache"
)

func TestNewBoundedLRU_RejectsNonPositiveCapacity(t *testing.T) {
	_, err := cache.NewBoundedLRU[string, int](0)
	require.Error(t, err)

	_, err = cache.NewBoundedLRU[string, int](-1)
	require.Error(t, err)
}

/*
TestBoundedLRU_AccessPromotesEntry reproduces spec.md §8 scenario 1: insert
(a,1),(b,2) into a capacity-2 cache, access a, insert (c,3) -> the cache
contains {a,c} and has evicted b.
*/
func TestBoundedLRU_AccessPromotesEntry(t *testing.T) {
	c, err := cache.NewBoundedLRU[string, int](2)
	require.NoError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)

	_, ok := c.Get("a")
	require.True(t, ok)

	c.Add("c", 3)

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Capacity())
}

func TestBoundedLRU_Remove(t *testing.T) {
	c, err := cache.NewBoundedLRU[string, int](4)
	require.NoError(t, err)

	c.Add("a", 1)
	c.Remove("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
