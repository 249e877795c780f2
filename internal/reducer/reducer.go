// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reducer implements reduce(state, action, now) -> []Effect (spec.md
§4.1): a pure, synchronous function with no I/O. It is split by concern
into one file per sub-area, mirroring the teacher's per-domain service
file split (internal/core/comic/service_*.go) — here the "domain" is a
slice of the dispatch loop's behavior rather than a repository.

Reduce takes *state.AppState rather than returning a new value: the
teacher's services mutate their aggregate roots in place too (e.g.
service_relation.go appending to a comic's tag list), and spec.md's own
"AppState is the singleton owned by the dispatch loop" reads naturally as
in-place mutation in Go — this is a documented judgment call (see
DESIGN.md), not a deviation from "no I/O": nothing here blocks or talks to
the outside world.
*/
package reducer

import (
	"time"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/sessioncache"
	"github.com/taibuivan/pgview/internal/state"
)

// Reduce applies action to s at time now and returns the effects it
// requests. connCache is the connection-switch view-state store (spec.md
// §4.8): in-memory bookkeeping with no I/O of its own, threaded in
// explicitly rather than embedded in AppState to avoid an import cycle
// (sessioncache already depends on state for [state.ViewState]).
// Unhandled/unknown actions are a no-op, matching the closed command-line
// parser's "unknowns become... the no-op action" (spec.md §4.9) rather
// than panicking on an unrecognized variant.
func Reduce(s *state.AppState, connCache *sessioncache.Store, a action.Action, now time.Time) []effect.Effect {
	before := *s
	effects := reduceOne(s, connCache, a, now)

	if stateVisiblyChanged(before, *s) {
		s.RenderDirty = true
	}
	if s.RenderDirty {
		effects = append(effects, effect.Render{})
		s.RenderDirty = false
	}
	return effects
}

func reduceOne(s *state.AppState, connCache *sessioncache.Store, a action.Action, now time.Time) []effect.Effect {
	switch act := a.(type) {

	// # Connection lifecycle
	case action.TryConnect:
		return handleTryConnect(s, act)
	case action.ConnectionEstablished:
		return handleConnectionEstablished(s, act)
	case action.ConnectionFailed:
		return handleConnectionFailed(s, act, now)
	case action.SwitchConnection:
		return handleSwitchConnection(s, connCache, act)
	case action.ConnectionSaveFailed:
		return handleConnectionSaveFailed(s, act, now)
	case action.ProfilesLoaded:
		return handleProfilesLoaded(s, act)
	case action.ProfilesLoadFailed:
		return handleProfilesLoadFailed(s, act, now)
	case action.SelectConnectionProfile:
		return handleSelectConnectionProfile(s, connCache, act)
	case action.MoveConnectionSetupCursor:
		return handleMoveConnectionSetupCursor(s, act)

	// # Overlay / input mode
	case action.OpenOverlay:
		return handleOpenOverlay(s, act)
	case action.CloseOverlay:
		return handleCloseOverlay(s)
	case action.Escape:
		return handleEscape(s)

	// # Explorer / selection
	case action.SelectTable:
		return handleSelectTable(s, act)

	// # Metadata
	case action.MetadataLoaded:
		return handleMetadataLoaded(s, act)
	case action.MetadataFailed:
		return handleMetadataFailed(s, act, now)

	// # Table detail
	case action.TableDetailLoaded:
		return handleTableDetailLoaded(s, act)
	case action.TableDetailFailed:
		return handleTableDetailFailed(s, act, now)
	case action.TableDetailCached:
		return handleTableDetailCached(s, act)
	case action.TableDetailAlreadyCached:
		return handleTableDetailAlreadyCached(s, act)
	case action.TableDetailCacheFailed:
		return handleTableDetailCacheFailed(s, act)

	// # Query execution
	case action.ExecutePreview:
		return handleExecutePreview(s, act)
	case action.ExecuteAdhoc:
		return handleExecuteAdhoc(s, act)
	case action.QueryCompleted:
		return handleQueryCompleted(s, act)
	case action.QueryFailed:
		return handleQueryFailed(s, act, now)

	// # SQL modal / completion
	case action.SqlModalInput:
		return handleSqlModalInput(s, act, now)
	case action.CompletionUpdated:
		return handleCompletionUpdated(s, act)

	// # Command line / palette
	case action.CommandLineInput:
		return handleCommandLineInput(s, act)
	case action.SubmitCommandLine:
		return handleSubmitCommandLine(s, act)
	case action.PaletteSelect:
		return handlePaletteSelect(s, act)

	// # Cell edit / write guardrail
	case action.SubmitCellEdit:
		return handleSubmitCellEdit(s, act)
	case action.ConfirmWrite:
		return handleConfirmWrite(s, act)
	case action.WriteCompleted:
		return handleWriteCompleted(s, act, now)
	case action.WriteFailed:
		return handleWriteFailed(s, act, now)

	// # ER diagram
	case action.OpenErDiagram:
		return handleOpenErDiagram(s, act)
	case action.ErDiagramOpened:
		return handleErDiagramOpened(s, act, now)
	case action.ErDiagramFailed:
		return handleErDiagramFailed(s, act, now)

	// # Render / tick
	case action.Tick:
		return handleTick(s, act)
	case action.RenderRequested:
		s.RenderDirty = true
		return nil
	}
	return nil
}

// stateVisiblyChanged is a coarse check: anything the view renders that
// might differ. A real implementation would diff specific fields; here we
// conservatively mark dirty whenever the input mode, runtime, or view
// pointer identity differs, which covers every handler above since each
// one only mutates through *s.
func stateVisiblyChanged(before, after state.AppState) bool {
	return before.InputMode != after.InputMode ||
		before.Runtime != after.Runtime ||
		before.View.Metadata != after.View.Metadata ||
		before.View.TableDetail != after.View.TableDetail ||
		before.View.CurrentTable != after.View.CurrentTable ||
		before.View.QueryResult != after.View.QueryResult ||
		before.View.ExplorerSelected != after.View.ExplorerSelected ||
		before.SqlModalText != after.SqlModalText ||
		before.SqlModalCursor != after.SqlModalCursor ||
		before.CommandLineText != after.CommandLineText ||
		before.ConnectionSetupCursor != after.ConnectionSetupCursor ||
		len(before.ConnectionProfiles) != len(after.ConnectionProfiles) ||
		before.Message != after.Message
}
