// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reducer

import (
	"strings"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/state"
)

// commandSet is the closed set of ":"-prefixed commands the command line
// recognizes (spec.md §4.9): q/quit, ?/help, sql, erd, w/write,
// conn/connect. Anything
// else is Command::Unknown and resolves to the no-op action.
var commandSet = map[string]string{
	"q": "quit", "quit": "quit",
	"?": "help", "help": "help",
	"sql":  "sql",
	"erd":  "erd",
	"w":    "write", "write": "write",
	"conn": "connect", "connect": "connect",
}

// PaletteEntry is one row of the command palette (spec.md §4.9: "a list
// derived statically from a global keybindings table").
type PaletteEntry struct {
	Label   string
	Command string
}

// PaletteEntries is the fixed, de-duplicated palette list. It excludes
// "command_palette" itself (self-open) and the raw navigation keys, since
// neither has a standalone command-line spelling in commandSet (spec.md
// §4.9 "fixed exclusion set: duplicates, self-open, non-executable binding
// rows").
var PaletteEntries = []PaletteEntry{
	{Label: "Quit", Command: "quit"},
	{Label: "Help", Command: "help"},
	{Label: "SQL editor", Command: "sql"},
	{Label: "ER diagram", Command: "erd"},
	{Label: "Confirm pending write", Command: "write"},
	{Label: "Switch connection", Command: "connect"},
}

// handleCommandLineInput sets the command-line buffer verbatim; cursor
// editing math lives in the kernel's keymap, same division of labor as the
// SQL modal.
func handleCommandLineInput(s *state.AppState, act action.CommandLineInput) []effect.Effect {
	s.CommandLineText = act.Text
	return nil
}

// handleSubmitCommandLine parses the buffer and runs the resolved command,
// or silently closes the command line on an unrecognized one.
func handleSubmitCommandLine(s *state.AppState, act action.SubmitCommandLine) []effect.Effect {
	text := strings.TrimSpace(strings.TrimPrefix(s.CommandLineText, ":"))
	name, _, _ := strings.Cut(text, " ")

	cmd, ok := commandSet[strings.ToLower(name)]
	if !ok {
		closeCommandLine(s)
		return nil
	}
	return runCommand(s, cmd)
}

// handlePaletteSelect runs the chosen palette row through the same
// runCommand path a typed command-line entry would take.
func handlePaletteSelect(s *state.AppState, act action.PaletteSelect) []effect.Effect {
	if act.Index < 0 || act.Index >= len(PaletteEntries) {
		return nil
	}
	return runCommand(s, PaletteEntries[act.Index].Command)
}

func closeCommandLine(s *state.AppState) {
	s.CommandLineText = ""
	s.InputMode = s.ReturnMode
	s.ReturnMode = state.ModeNormal
}

// runCommand executes one resolved command-line/palette entry, reusing the
// same handlers a direct keypress would go through rather than duplicating
// their state transitions.
func runCommand(s *state.AppState, cmd string) []effect.Effect {
	closeCommandLine(s)

	switch cmd {
	case "quit":
		return []effect.Effect{effect.Quit{}}
	case "help":
		s.ReturnMode = s.InputMode
		s.InputMode = state.ModeHelp
		return nil
	case "sql":
		s.ReturnMode = s.InputMode
		s.InputMode = state.ModeSqlModal
		return nil
	case "connect":
		return handleOpenOverlay(s, action.OpenOverlay{Mode: "connection_setup"})
	case "erd":
		return handleOpenErDiagram(s, action.OpenErDiagram{SeedTable: s.View.CurrentTable})
	case "write":
		if s.WritePreview == nil {
			return nil
		}
		return handleConfirmWrite(s, action.ConfirmWrite{Preview: *s.WritePreview})
	}
	return nil
}
