// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kernel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/state"
)

// translateKey maps one terminal key event to an Action given the current
// AppState (spec.md §4.1: "Overlay open/close is state-machine-based").
// Keys with no meaning in the current mode return nil — dropped silently,
// matching the reducer's own no-op-on-unrecognized behavior for overlay
// names.
func translateKey(msg tea.KeyMsg, s *state.AppState) action.Action {
	key := msg.String()

	if key == "esc" {
		return action.Escape{}
	}

	switch s.InputMode {
	case state.ModeSqlModal:
		return translateSqlModalKey(msg, s)
	case state.ModeCommandLine:
		return translateCommandLineKey(msg, s)
	case state.ModeCommandPalette:
		return translatePaletteKey(key)
	case state.ModeConfirmDialog:
		return translateConfirmDialogKey(key, s)
	case state.ModeConnectionSetup:
		return translateConnectionSetupKey(key, s)
	default:
		return translateNormalKey(key, s)
	}
}

func translateNormalKey(key string, s *state.AppState) action.Action {
	switch key {
	case ":":
		return action.OpenOverlay{Mode: "command_line"}
	case "t":
		return action.OpenOverlay{Mode: "table_picker"}
	case "p":
		return action.OpenOverlay{Mode: "command_palette"}
	case "?":
		return action.OpenOverlay{Mode: "help"}
	case "s":
		return action.OpenOverlay{Mode: "sql_modal"}
	case "e":
		seed := s.View.CurrentTable
		return action.OpenErDiagram{SeedTable: seed}
	case "c":
		return action.OpenOverlay{Mode: "connection_setup"}
	case "n", "b", "r":
		if s.View.CurrentTable == nil {
			return nil
		}
		schema, table := splitQualifiedName(*s.View.CurrentTable)
		direction := 0
		if key == "n" {
			direction = 1
		} else if key == "b" {
			direction = -1
		}
		return action.ExecutePreview{Schema: schema, Table: table, Direction: direction}
	}
	return nil
}

// translateSqlModalKey assembles the next SqlModalText/Cursor pair itself:
// the reducer's handleSqlModalInput sets the buffer verbatim to whatever it
// is given (spec.md §4.1 keeps the reducer free of string-editing logic),
// so inserting or deleting a character is the kernel's job.
func translateSqlModalKey(msg tea.KeyMsg, s *state.AppState) action.Action {
	text, cursor := s.SqlModalText, s.SqlModalCursor

	switch msg.Type {
	case tea.KeyEnter:
		return action.CloseOverlay{}
	case tea.KeyBackspace:
		if cursor == 0 {
			return nil
		}
		next := text[:cursor-1] + text[cursor:]
		return action.SqlModalInput{Text: next, Cursor: cursor - 1}
	case tea.KeyLeft:
		if cursor == 0 {
			return nil
		}
		return action.SqlModalInput{Text: text, Cursor: cursor - 1}
	case tea.KeyRight:
		if cursor == len(text) {
			return nil
		}
		return action.SqlModalInput{Text: text, Cursor: cursor + 1}
	case tea.KeyRunes:
		inserted := string(msg.Runes)
		next := text[:cursor] + inserted + text[cursor:]
		return action.SqlModalInput{Text: next, Cursor: cursor + len(inserted)}
	case tea.KeySpace:
		next := text[:cursor] + " " + text[cursor:]
		return action.SqlModalInput{Text: next, Cursor: cursor + 1}
	}
	return nil
}

// translateCommandLineKey edits the ":"-prefixed command buffer the same
// way translateSqlModalKey edits the SQL buffer: the reducer only ever
// sets CommandLineText verbatim (spec.md §4.9), so insert/delete math is
// the kernel's job. Unlike the SQL modal, the command line has no
// mid-buffer cursor to track — input always appends/removes at the end.
func translateCommandLineKey(msg tea.KeyMsg, s *state.AppState) action.Action {
	text := s.CommandLineText

	switch msg.Type {
	case tea.KeyEnter:
		return action.SubmitCommandLine{}
	case tea.KeyBackspace:
		if len(text) == 0 {
			return nil
		}
		return action.CommandLineInput{Text: text[:len(text)-1]}
	case tea.KeyRunes:
		return action.CommandLineInput{Text: text + string(msg.Runes)}
	case tea.KeySpace:
		return action.CommandLineInput{Text: text + " "}
	}
	return nil
}

// translatePaletteKey maps a digit key to the palette entry at that
// 1-based position (spec.md §4.9's statically-derived list).
func translatePaletteKey(key string) action.Action {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return nil
	}
	return action.PaletteSelect{Index: int(key[0]-'1')}
}

// translateConnectionSetupKey drives the saved-connections list: up/down
// move the cursor, enter connects to the selected row.
func translateConnectionSetupKey(key string, s *state.AppState) action.Action {
	switch key {
	case "up", "k":
		return action.MoveConnectionSetupCursor{Delta: -1}
	case "down", "j":
		return action.MoveConnectionSetupCursor{Delta: 1}
	case "enter":
		return action.SelectConnectionProfile{Index: s.ConnectionSetupCursor}
	}
	return nil
}

func translateConfirmDialogKey(key string, s *state.AppState) action.Action {
	switch key {
	case "y", "enter":
		if s.WritePreview == nil {
			return nil
		}
		return action.ConfirmWrite{Preview: *s.WritePreview}
	case "n":
		return action.CloseOverlay{}
	}
	return nil
}
