// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reducer

import (
	"time"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/platform/constants"
	"github.com/taibuivan/pgview/internal/state"
)

// setError arms the toast-style error message, clearing any success
// message (spec.md §4.10: "set_error clears any success and vice versa").
// now is always the value the dispatch loop passed into [Reduce] — the
// reducer never calls time.Now() itself, keeping it a pure function of
// its arguments.
func setError(s *state.AppState, now time.Time, message string) {
	msg := message
	expires := now.Add(constants.MessageExpiry)
	s.Message = state.MessageState{LastError: &msg, ExpiresAt: &expires}
}

// setSuccess arms the toast-style success message, clearing any error.
func setSuccess(s *state.AppState, now time.Time, message string) {
	msg := message
	expires := now.Add(constants.MessageExpiry)
	s.Message = state.MessageState{LastSuccess: &msg, ExpiresAt: &expires}
}

// handleTick clears any expired message and "copied" flash (spec.md
// §4.10: "A dispatch-loop tick clears expired messages and the 'copied'
// flash").
func handleTick(s *state.AppState, act action.Tick) []effect.Effect {
	if s.Message.ExpiresAt != nil && !act.Now.Before(*s.Message.ExpiresAt) {
		s.Message = state.MessageState{}
	}
	if info := s.Runtime.ConnectionError; info != nil && info.CopiedUntil != nil && !act.Now.Before(*info.CopiedUntil) {
		info.CopiedUntil = nil
	}
	return nil
}
