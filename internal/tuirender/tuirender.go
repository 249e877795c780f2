// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tuirender builds the terminal frame pgview draws on every
Effect::Render (spec.md §4.2). Build is the single source of truth for
layout: the kernel's bubbletea View() calls it for the string bubbletea
prints, and the [ports.Renderer] adapter calls it for the [ports.RenderOutput]
viewport metrics. Keeping one builder behind both callers avoids the two
ever drifting apart.
*/
package tuirender

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/ports"
	"github.com/taibuivan/pgview/internal/reducer"
	"github.com/taibuivan/pgview/internal/state"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	explorerStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	mainPaneStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

// Builder composes an [state.AppState] snapshot into terminal output.
type Builder struct {
	width, height int
}

// NewBuilder constructs a Builder with the given terminal dimensions,
// typically set on the first tea.WindowSizeMsg.
func NewBuilder(width, height int) *Builder {
	return &Builder{width: width, height: height}
}

// Resize updates the viewport dimensions on a tea.WindowSizeMsg.
func (b *Builder) Resize(width, height int) {
	b.width, b.height = width, height
}

// Draw implements [ports.Renderer]; s must be a *state.AppState.
func (b *Builder) Draw(s any) (ports.RenderOutput, error) {
	appState, ok := s.(*state.AppState)
	if !ok {
		return ports.RenderOutput{}, fmt.Errorf("tuirender: Draw expects *state.AppState, got %T", s)
	}
	_, output := b.Build(appState)
	return output, nil
}

// Build renders s and reports the layout metrics used for that frame.
func (b *Builder) Build(s *state.AppState) (string, ports.RenderOutput) {
	explorerWidth := b.width / 4
	if explorerWidth < 20 {
		explorerWidth = 20
	}
	mainWidth := b.width - explorerWidth - 4
	if mainWidth < 10 {
		mainWidth = 10
	}

	statusLine := b.statusLine(s)
	bodyHeight := b.height - lipgloss.Height(statusLine) - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	explorer := explorerStyle.Width(explorerWidth).Height(bodyHeight).Render(b.explorerPane(s))
	main := mainPaneStyle.Width(mainWidth).Height(bodyHeight).Render(b.mainPane(s))

	body := lipgloss.JoinHorizontal(lipgloss.Top, explorer, main)
	frame := lipgloss.JoinVertical(lipgloss.Left, body, statusLine)

	paneHeights := map[string]int{
		"explorer": bodyHeight,
		"main":     bodyHeight,
	}
	return frame, ports.RenderOutput{
		ViewportWidth:  b.width,
		ViewportHeight: b.height,
		PaneHeights:    paneHeights,
	}
}

func (b *Builder) explorerPane(s *state.AppState) string {
	if s.View.Metadata == nil {
		return "(not connected)"
	}
	var lines []string
	lines = append(lines, headerStyle.Render(s.View.Metadata.DatabaseName))
	for _, t := range s.View.Metadata.Tables {
		name := t.QualifiedName()
		if s.View.ExplorerSelected != nil && *s.View.ExplorerSelected == name {
			lines = append(lines, selectedStyle.Render(name))
		} else {
			lines = append(lines, name)
		}
	}
	return strings.Join(lines, "\n")
}

func (b *Builder) mainPane(s *state.AppState) string {
	switch {
	case s.InputMode == state.ModeCommandPalette:
		return renderPalette()
	case s.InputMode == state.ModeConnectionSetup:
		return renderConnectionSetup(s)
	case s.View.QueryResult != nil:
		return renderQueryResult(s.View.QueryResult.Columns, s.View.QueryResult.Rows)
	case s.View.TableDetail != nil:
		return renderTableDetail(s.View.TableDetail.Columns)
	default:
		return "select a table to preview its rows"
	}
}

func renderQueryResult(columns []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.Join(columns, " | ")))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}
	return b.String()
}

func renderPalette() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Command palette"))
	b.WriteString("\n")
	for _, entry := range reducer.PaletteEntries {
		fmt.Fprintf(&b, "%-24s :%s\n", entry.Label, entry.Command)
	}
	return b.String()
}

func renderConnectionSetup(s *state.AppState) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Saved connections"))
	b.WriteString("\n")
	if len(s.ConnectionProfiles) == 0 {
		b.WriteString("(none saved)\n")
		return b.String()
	}
	for i, p := range s.ConnectionProfiles {
		line := fmt.Sprintf("%s@%s:%d/%s", p.Username, p.Host, p.Port, p.Database)
		if i == s.ConnectionSetupCursor {
			b.WriteString(selectedStyle.Render(p.Name + "  " + line))
		} else {
			b.WriteString(p.Name + "  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderTableDetail(columns []domain.Column) string {
	var b strings.Builder
	for _, c := range columns {
		fmt.Fprintf(&b, "%s %s\n", c.Name, c.DataType)
	}
	return b.String()
}

func (b *Builder) statusLine(s *state.AppState) string {
	if s.InputMode == state.ModeCommandLine {
		return statusBarStyle.Width(b.width).Render(":" + s.CommandLineText)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", s.Runtime.ConnectionState))
	if s.Runtime.DatabaseName != "" {
		parts = append(parts, s.Runtime.DatabaseName)
	}
	if s.Message.LastError != nil {
		parts = append(parts, errorStyle.Render(*s.Message.LastError))
	} else if s.Message.LastSuccess != nil {
		parts = append(parts, okStyle.Render(*s.Message.LastSuccess))
	}
	return statusBarStyle.Width(b.width).Render(strings.Join(parts, "  "))
}
