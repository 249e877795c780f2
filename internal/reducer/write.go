// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reducer

import (
	"time"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/guardrail"
	"github.com/taibuivan/pgview/internal/state"
)

// handleSubmitCellEdit classifies the edit against the current table
// detail and, if the guardrail allows it, opens the confirm dialog with
// the generated UPDATE preview (spec.md §4.6).
func handleSubmitCellEdit(s *state.AppState, act action.SubmitCellEdit) []effect.Effect {
	if s.View.TableDetail == nil {
		return nil
	}

	preview := guardrail.BuildWritePreview(act.Edit, *s.View.TableDetail)

	qualifiedColumn := act.Edit.Schema + "." + act.Edit.Table + "." + act.Edit.Column
	s.PendingCellEdit = &qualifiedColumn
	s.WritePreview = &preview

	s.ReturnMode = s.InputMode
	s.InputMode = state.ModeConfirmDialog
	return nil
}

// handleConfirmWrite runs the confirmed UPDATE through the write
// guardrail's one remaining gate: blocked previews never reach
// ExecuteWrite.
func handleConfirmWrite(s *state.AppState, act action.ConfirmWrite) []effect.Effect {
	if act.Preview.Guardrail.Blocked {
		return nil
	}
	return []effect.Effect{effect.ExecuteWrite{DSN: s.Runtime.DSN, SQL: act.Preview.SQL}}
}

// handleWriteCompleted closes the confirm dialog and reports success.
func handleWriteCompleted(s *state.AppState, act action.WriteCompleted, now time.Time) []effect.Effect {
	s.PendingCellEdit = nil
	s.WritePreview = nil
	s.InputMode = s.ReturnMode
	s.ReturnMode = state.ModeNormal
	setSuccess(s, now, "write applied")
	return nil
}

// handleWriteFailed keeps the confirm dialog open so the user can see what
// failed and retry or cancel.
func handleWriteFailed(s *state.AppState, act action.WriteFailed, now time.Time) []effect.Effect {
	setError(s, now, act.Err.Error())
	return nil
}
