// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package effect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pgview/internal/effect"
)

func TestExclusive_OnlyOpenConsole(t *testing.T) {
	assert.True(t, effect.Exclusive(effect.OpenConsole{DSN: "postgres://x", ProjectName: "demo"}))
	assert.False(t, effect.Exclusive(effect.Render{}))
	assert.False(t, effect.Exclusive(effect.FetchMetadata{DSN: "postgres://x"}))
}

func TestSequence_PreservesOrder(t *testing.T) {
	seq := effect.Sequence{Effects: []effect.Effect{
		effect.CacheInvalidate{DSN: "a"},
		effect.FetchMetadata{DSN: "b"},
	}}

	require := func(cond bool) {
		if !cond {
			t.Fatal("sequence order not preserved")
		}
	}
	_, ok0 := seq.Effects[0].(effect.CacheInvalidate)
	_, ok1 := seq.Effects[1].(effect.FetchMetadata)
	require(ok0 && ok1)
}
