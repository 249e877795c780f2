// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sessioncache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/sessioncache"
	"github.com/taibuivan/pgview/internal/state"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := sessioncache.NewStore()
	id := domain.NewConnectionId()

	table := "public.users"
	view := state.NewViewState()
	view.CurrentTable = &table

	store.Save(id, view)

	loaded := store.Load(id)
	if assert.NotNil(t, loaded.CurrentTable) {
		assert.Equal(t, "public.users", *loaded.CurrentTable)
	}
}

func TestStore_LoadAbsent_ReturnsDefaults(t *testing.T) {
	store := sessioncache.NewStore()
	loaded := store.Load(domain.NewConnectionId())
	assert.Nil(t, loaded.CurrentTable)
	assert.Equal(t, state.InspectorColumns, loaded.InspectorTab)
}

func TestStore_Forget(t *testing.T) {
	store := sessioncache.NewStore()
	id := domain.NewConnectionId()

	store.Save(id, state.NewViewState())
	assert.Equal(t, 1, store.Len())

	store.Forget(id)
	assert.Equal(t, 0, store.Len())
}
