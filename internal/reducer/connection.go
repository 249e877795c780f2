// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reducer

import (
	"errors"
	"time"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/platform/apperr"
	"github.com/taibuivan/pgview/internal/sessioncache"
	"github.com/taibuivan/pgview/internal/state"
)

// handleTryConnect attempts to move runtime into the active connection
// slot. Idempotent per spec.md §4.1: "if connection_state in {Connecting,
// Connected}, it returns no effects."
func handleTryConnect(s *state.AppState, act action.TryConnect) []effect.Effect {
	if s.Runtime.ConnectionState == state.ConnectionConnecting ||
		s.Runtime.ConnectionState == state.ConnectionConnected {
		return nil
	}

	s.Runtime = state.Runtime{
		DSN:                  act.DSN,
		ActiveConnectionID:   act.ConnectionID,
		ActiveConnectionName: act.Name,
		ConnectionState:      state.ConnectionConnecting,
	}

	generation := s.NextGeneration()
	return []effect.Effect{effect.FetchMetadata{DSN: act.DSN, Generation: generation}}
}

// handleConnectionEstablished marks the active connection live. A result
// for a connection id that is no longer active (superseded by a later
// TryConnect/SwitchConnection) is dropped.
func handleConnectionEstablished(s *state.AppState, act action.ConnectionEstablished) []effect.Effect {
	if act.ConnectionID != s.Runtime.ActiveConnectionID {
		return nil
	}
	s.Runtime.ConnectionState = state.ConnectionConnected
	s.Runtime.DatabaseName = act.DatabaseName
	s.Runtime.ConnectionError = nil
	return nil
}

// handleConnectionFailed records a classified connection failure (spec.md
// §4.8 ShowConnectionError).
func handleConnectionFailed(s *state.AppState, act action.ConnectionFailed, now time.Time) []effect.Effect {
	if act.ConnectionID != s.Runtime.ActiveConnectionID {
		return nil
	}
	s.Runtime.ConnectionState = state.ConnectionFailed
	s.Runtime.ConnectionError = classifyConnectionError(act.Err)
	setError(s, now, s.Runtime.ConnectionError.Message)
	return nil
}

// classifyConnectionError turns a port-boundary error into the displayable
// shape the connection-error overlay renders (spec.md §4.8).
func classifyConnectionError(err error) *state.ConnectionErrorInfo {
	kind := "UNKNOWN"
	message := "failed to connect"
	if err != nil {
		message = err.Error()
	}

	var metaErr *apperr.MetadataError
	if errors.As(err, &metaErr) {
		kind = string(metaErr.Kind)
		message = metaErr.Message
	}
	return &state.ConnectionErrorInfo{Kind: kind, Message: message}
}

// handleSwitchConnection performs the four-step switch sequence (spec.md
// §4.8): save the outgoing view, load (or default) the incoming one,
// update runtime identity, and invalidate-then-refetch metadata.
func handleSwitchConnection(s *state.AppState, connCache *sessioncache.Store, act action.SwitchConnection) []effect.Effect {
	if act.ConnectionID == s.Runtime.ActiveConnectionID {
		return nil
	}

	oldID := s.Runtime.ActiveConnectionID
	oldDSN := s.Runtime.DSN
	if oldID != "" {
		connCache.Save(oldID, s.View)
	}

	s.View = connCache.Load(act.ConnectionID)

	s.Runtime = state.Runtime{
		DSN:                  act.DSN,
		ActiveConnectionID:   act.ConnectionID,
		ActiveConnectionName: act.Name,
		ConnectionState:      state.ConnectionConnecting,
	}

	generation := s.NextGeneration()
	var effects []effect.Effect
	if oldDSN != "" {
		effects = append(effects, effect.CacheInvalidate{DSN: oldDSN})
	}
	effects = append(effects, effect.FetchMetadata{DSN: act.DSN, Generation: generation})
	return []effect.Effect{effect.Sequence{Effects: effects}}
}

// handleConnectionSaveFailed surfaces a ConnectionStore write failure as a
// toast (spec.md §4.1 failure semantics).
func handleConnectionSaveFailed(s *state.AppState, act action.ConnectionSaveFailed, now time.Time) []effect.Effect {
	setError(s, now, act.Err.Error())
	return nil
}
