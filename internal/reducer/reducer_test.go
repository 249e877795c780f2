// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reducer_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/guardrail"
	"github.com/taibuivan/pgview/internal/reducer"
	"github.com/taibuivan/pgview/internal/sessioncache"
	"github.com/taibuivan/pgview/internal/state"
)

func newFixture() (*state.AppState, *sessioncache.Store) {
	return state.New("pgview-test"), sessioncache.NewStore()
}

func TestTryConnect_IsIdempotentWhileConnecting(t *testing.T) {
	s, cache := newFixture()
	now := time.Now()

	effects := reducer.Reduce(s, cache, action.TryConnect{ConnectionID: "conn-1", DSN: "postgres://x", Name: "primary"}, now)
	require.NotEmpty(t, effects)
	assert.Equal(t, state.ConnectionConnecting, s.Runtime.ConnectionState)

	// A second TryConnect while already connecting must be a no-op per
	// spec.md §4.1.
	effects = reducer.Reduce(s, cache, action.TryConnect{ConnectionID: "conn-1", DSN: "postgres://x", Name: "primary"}, now)
	assert.Empty(t, effects)
}

func TestMetadataLoaded_DropsStaleGeneration(t *testing.T) {
	s, cache := newFixture()
	now := time.Now()
	reducer.Reduce(s, cache, action.TryConnect{ConnectionID: "conn-1", DSN: "postgres://x"}, now)

	staleGen := uint64(0)
	reducer.Reduce(s, cache, action.MetadataLoaded{
		Metadata:   domain.DatabaseMetadata{DatabaseName: "appdb"},
		Generation: staleGen,
	}, now)

	assert.Nil(t, s.View.Metadata)
}

func TestMetadataLoaded_CurrentGeneration_Applies(t *testing.T) {
	s, cache := newFixture()
	now := time.Now()
	reducer.Reduce(s, cache, action.TryConnect{ConnectionID: "conn-1", DSN: "postgres://x"}, now)

	reducer.Reduce(s, cache, action.MetadataLoaded{
		Metadata:   domain.DatabaseMetadata{DatabaseName: "appdb"},
		Generation: s.SelectionGeneration,
	}, now)

	require.NotNil(t, s.View.Metadata)
	assert.Equal(t, "appdb", s.View.Metadata.DatabaseName)
	assert.Equal(t, state.ConnectionConnected, s.Runtime.ConnectionState)
}

func TestSwitchConnection_SavesAndRestoresViewState(t *testing.T) {
	s, cache := newFixture()
	now := time.Now()
	reducer.Reduce(s, cache, action.TryConnect{ConnectionID: "conn-a", DSN: "postgres://a"}, now)

	table := "public.users"
	s.View.CurrentTable = &table

	effects := reducer.Reduce(s, cache, action.SwitchConnection{ConnectionID: "conn-b", DSN: "postgres://b", Name: "secondary"}, now)
	require.NotEmpty(t, effects)
	assert.Nil(t, s.View.CurrentTable)
	assert.Equal(t, domain.ConnectionId("conn-b"), s.Runtime.ActiveConnectionID)

	seq, ok := effects[0].(effect.Sequence)
	require.True(t, ok)
	assert.Len(t, seq.Effects, 2)

	reducer.Reduce(s, cache, action.SwitchConnection{ConnectionID: "conn-a", DSN: "postgres://a"}, now)
	assert.Equal(t, &table, s.View.CurrentTable)
}

func TestOverlay_OpenCloseRestoresReturnMode(t *testing.T) {
	s, cache := newFixture()
	now := time.Now()

	reducer.Reduce(s, cache, action.OpenOverlay{Mode: "help"}, now)
	assert.Equal(t, state.ModeHelp, s.InputMode)

	reducer.Reduce(s, cache, action.CloseOverlay{}, now)
	assert.Equal(t, state.ModeNormal, s.InputMode)
}

func TestEscape_ClosesOverlayBeforeClearingCellEdit(t *testing.T) {
	s, cache := newFixture()
	now := time.Now()

	reducer.Reduce(s, cache, action.OpenOverlay{Mode: "sql_modal"}, now)
	edit := "UPDATE ..."
	s.PendingCellEdit = &edit

	reducer.Reduce(s, cache, action.Escape{}, now)
	assert.Equal(t, state.ModeNormal, s.InputMode)
	assert.NotNil(t, s.PendingCellEdit, "escape should close the overlay first, not clear the cell edit in the same tick")

	reducer.Reduce(s, cache, action.Escape{}, now)
	assert.Nil(t, s.PendingCellEdit)
}

func TestConfirmWrite_BlockedPreviewNeverExecutes(t *testing.T) {
	s, cache := newFixture()
	now := time.Now()

	blocked := guardrail.BuildWritePreview(
		guardrail.CellEdit{Schema: "public", Table: "logs", Column: "message", NewValue: "hi"},
		domain.Table{Schema: "public", Name: "logs"},
	)
	require.True(t, blocked.Guardrail.Blocked)

	effects := reducer.Reduce(s, cache, action.ConfirmWrite{Preview: blocked}, now)
	assert.Empty(t, effects)
}

func TestMessage_ExpiresOnTick(t *testing.T) {
	s, cache := newFixture()
	now := time.Now()

	reducer.Reduce(s, cache, action.ConnectionSaveFailed{Err: errors.New("disk full")}, now)
	require.NotNil(t, s.Message.LastError)

	reducer.Reduce(s, cache, action.Tick{Now: now.Add(10 * time.Second)}, now)
	assert.Nil(t, s.Message.LastError)
}
