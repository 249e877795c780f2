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

// handleSqlModalInput updates the editor buffer and (re-)arms the
// completion debounce deadline, replacing any deadline already armed
// (spec.md §4.2 ScheduleCompletionDebounce / §4.3 "debounced on keystroke").
func handleSqlModalInput(s *state.AppState, act action.SqlModalInput, now time.Time) []effect.Effect {
	s.SqlModalText = act.Text
	s.SqlModalCursor = act.Cursor

	triggerAt := now.Add(constants.CompletionDebounceDefault)
	return []effect.Effect{effect.ScheduleCompletionDebounce{TriggerAtUnixMs: triggerAt.UnixMilli()}}
}

// handleCompletionUpdated has no reducer-owned state of its own today: the
// ranked candidates live in the kernel's render model, not AppState. This
// handler exists so the action stays part of the exhaustive switch and so
// a future candidate-selection cursor has a home to mutate.
func handleCompletionUpdated(s *state.AppState, act action.CompletionUpdated) []effect.Effect {
	return nil
}
