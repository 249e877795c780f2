// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package state defines AppState, the singleton value the dispatch loop owns
(spec.md §3, §9: "AppState is the singleton owned by the dispatch loop").
Every field here is plain data; all behavior that mutates it lives in
internal/reducer so the type itself stays a transparent struct, mirroring
the teacher's domain-type style.
*/
package state

import (
	"time"

	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/ergraph"
	"github.com/taibuivan/pgview/internal/guardrail"
	"github.com/taibuivan/pgview/internal/pagination"
)

// ConnectionState tracks the lifecycle of the active database connection
// (spec.md §3: NotConnected -> Connecting -> (Connected | Failed) ->
// NotConnected on reconfigure).
type ConnectionState string

const (
	ConnectionNotConnected ConnectionState = "not_connected"
	ConnectionConnecting   ConnectionState = "connecting"
	ConnectionConnected    ConnectionState = "connected"
	ConnectionFailed       ConnectionState = "failed"
)

// InputMode names the single active overlay, or Normal when none is open
// (spec.md §4.1).
type InputMode string

const (
	ModeNormal           InputMode = "normal"
	ModeCommandLine      InputMode = "command_line"
	ModeTablePicker      InputMode = "table_picker"
	ModeCommandPalette   InputMode = "command_palette"
	ModeHelp             InputMode = "help"
	ModeSqlModal         InputMode = "sql_modal"
	ModeConnectionSetup  InputMode = "connection_setup"
	ModeConfirmDialog    InputMode = "confirm_dialog"
)

// InspectorTab selects which detail tab the table inspector shows.
type InspectorTab string

const (
	InspectorColumns InspectorTab = "columns"
	InspectorIndexes InspectorTab = "indexes"
	InspectorFKs     InspectorTab = "foreign_keys"
	InspectorRLS     InspectorTab = "rls"
	InspectorDDL     InspectorTab = "ddl"
)

// ConnectionErrorInfo is a classified, displayable connection failure
// (spec.md §4.8).
type ConnectionErrorInfo struct {
	Kind           string
	Message        string
	MaskedDetails  string
	CopiedUntil    *time.Time
}

// MessageState is the toast-style status line (spec.md §4.10).
type MessageState struct {
	LastError   *string
	LastSuccess *string
	ExpiresAt   *time.Time
}

// Runtime holds the fields that describe "what we are connected to right
// now", separate from per-connection cached view state.
type Runtime struct {
	DSN                   string
	DatabaseName          string
	ActiveConnectionID    domain.ConnectionId
	ActiveConnectionName  string
	ConnectionState       ConnectionState
	ConnectionError       *ConnectionErrorInfo
}

// ErPreparation is the live ER-coordinator state for the active metadata
// snapshot (spec.md §4.4, §3 invariant: pending/fetching/failed disjoint —
// enforced by [ergraph.Coordinator]'s own bookkeeping).
type ErPreparation struct {
	Coordinator *ergraph.Coordinator
	SeedTable   *string
}

// ViewState is everything saved on connection switch-away and restored on
// switch-back (spec.md §3 "Connection cache").
type ViewState struct {
	Metadata         *domain.DatabaseMetadata
	TableDetail      *domain.Table
	CurrentTable     *string
	QueryResult      *domain.QueryResult
	ResultHistory    []*domain.QueryResult
	HistoryIndex     *int
	ExplorerSelected *string
	InspectorTab     InspectorTab
	Pagination       pagination.State
}

// NewViewState returns an empty ViewState with its defaults (spec.md §3
// "if absent, uses defaults" on connection switch).
func NewViewState() ViewState {
	return ViewState{InspectorTab: InspectorColumns}
}

// AppState is the single value the dispatch loop owns and the reducer
// transforms (spec.md §9).
type AppState struct {
	ProjectName string

	Runtime Runtime
	View    ViewState

	InputMode  InputMode
	ReturnMode InputMode

	SelectionGeneration uint64
	RenderDirty         bool

	SqlModalText   string
	SqlModalCursor int

	CommandLineText string // buffer for the ":"-prefixed command line (spec.md §4.9)

	ConnectionProfiles    []domain.ConnectionProfile // saved connections, for the setup overlay
	ConnectionSetupCursor int                        // selected row within ConnectionProfiles

	PendingCellEdit *string                 // qualified column reference awaiting a value
	WritePreview    *guardrail.WritePreview // preview pending confirmation in the confirm dialog

	ErState ErPreparation

	Message MessageState
}

// New constructs the initial AppState for a freshly started session
// (spec.md §3 "Lifecycles": "AppState is created once at startup with
// {project_name}").
func New(projectName string) *AppState {
	return &AppState{
		ProjectName: projectName,
		Runtime:     Runtime{ConnectionState: ConnectionNotConnected},
		View:        NewViewState(),
		InputMode:   ModeNormal,
	}
}

// NextGeneration mints a new generation counter, strictly increasing
// (spec.md §3 invariant).
func (s *AppState) NextGeneration() uint64 {
	s.SelectionGeneration++
	return s.SelectionGeneration
}

// IsStale reports whether generation is older than the current selection
// generation (spec.md §4.1: "if stale... drops UI state changes").
func (s *AppState) IsStale(generation uint64) bool {
	return generation < s.SelectionGeneration
}
