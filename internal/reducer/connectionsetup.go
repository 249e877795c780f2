// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reducer

import (
	"time"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/sessioncache"
	"github.com/taibuivan/pgview/internal/state"
)

// handleProfilesLoaded stocks the connection-setup overlay's list. A
// reload while the cursor already points past the new list's end clamps
// back to the last row rather than going out of range.
func handleProfilesLoaded(s *state.AppState, act action.ProfilesLoaded) []effect.Effect {
	s.ConnectionProfiles = act.Profiles
	if s.ConnectionSetupCursor >= len(s.ConnectionProfiles) {
		s.ConnectionSetupCursor = len(s.ConnectionProfiles) - 1
	}
	if s.ConnectionSetupCursor < 0 {
		s.ConnectionSetupCursor = 0
	}
	return nil
}

// handleProfilesLoadFailed surfaces a connection-store read failure as a
// toast; the setup overlay still opens, just with an empty list.
func handleProfilesLoadFailed(s *state.AppState, act action.ProfilesLoadFailed, now time.Time) []effect.Effect {
	setError(s, now, act.Err.Error())
	return nil
}

// handleSelectConnectionProfile resolves the chosen row's DSN and runs it
// through the same TryConnect/SwitchConnection handlers a typed DSN would
// go through, per spec.md §4.8's connection lifecycle.
func handleSelectConnectionProfile(s *state.AppState, connCache *sessioncache.Store, act action.SelectConnectionProfile) []effect.Effect {
	if act.Index < 0 || act.Index >= len(s.ConnectionProfiles) {
		return nil
	}
	profile := s.ConnectionProfiles[act.Index]
	dsn := profile.ToDSN()

	var effects []effect.Effect
	if s.Runtime.ActiveConnectionID == "" {
		effects = handleTryConnect(s, action.TryConnect{ConnectionID: profile.ID, DSN: dsn, Name: profile.Name})
	} else {
		effects = handleSwitchConnection(s, connCache, action.SwitchConnection{ConnectionID: profile.ID, DSN: dsn, Name: profile.Name})
	}
	s.InputMode = s.ReturnMode
	s.ReturnMode = state.ModeNormal
	return effects
}

// handleMoveConnectionSetupCursor shifts the selected row, clamped to the
// list's bounds (a no-op on an empty list).
func handleMoveConnectionSetupCursor(s *state.AppState, act action.MoveConnectionSetupCursor) []effect.Effect {
	if len(s.ConnectionProfiles) == 0 {
		return nil
	}
	next := s.ConnectionSetupCursor + act.Delta
	if next < 0 {
		next = 0
	}
	if next > len(s.ConnectionProfiles)-1 {
		next = len(s.ConnectionProfiles) - 1
	}
	s.ConnectionSetupCursor = next
	return nil
}
