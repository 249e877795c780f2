// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reducer

import (
	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/state"
)

// modeByName maps the loosely-typed OpenOverlay.Mode string onto the
// closed InputMode set. An unrecognized name is a no-op (spec.md §4.9's
// "unknowns resolve to the no-op action" applies equally here).
var modeByName = map[string]state.InputMode{
	"command_line":     state.ModeCommandLine,
	"table_picker":     state.ModeTablePicker,
	"command_palette":  state.ModeCommandPalette,
	"help":             state.ModeHelp,
	"sql_modal":        state.ModeSqlModal,
	"connection_setup": state.ModeConnectionSetup,
	"confirm_dialog":   state.ModeConfirmDialog,
}

// handleOpenOverlay opens a single overlay, remembering the mode to
// restore on close (spec.md §4.1: "opening a new overlay sets return_mode
// so closing restores the prior mode").
func handleOpenOverlay(s *state.AppState, act action.OpenOverlay) []effect.Effect {
	target, ok := modeByName[act.Mode]
	if !ok {
		return nil
	}
	s.ReturnMode = s.InputMode
	s.InputMode = target

	if target == state.ModeConnectionSetup {
		return []effect.Effect{effect.LoadConnectionProfiles{}}
	}
	return nil
}

// handleCloseOverlay restores the mode active before the current overlay
// was opened.
func handleCloseOverlay(s *state.AppState) []effect.Effect {
	s.InputMode = s.ReturnMode
	s.ReturnMode = state.ModeNormal
	return nil
}

// handleEscape is context-dependent (spec.md §4.1): it closes the
// innermost overlay, or — with no overlay open — clears an in-progress
// cell edit.
func handleEscape(s *state.AppState) []effect.Effect {
	if s.InputMode != state.ModeNormal {
		return handleCloseOverlay(s)
	}
	if s.PendingCellEdit != nil {
		s.PendingCellEdit = nil
		s.WritePreview = nil
	}
	return nil
}
