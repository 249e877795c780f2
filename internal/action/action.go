// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package action defines the closed set of events the reducer dispatches on
(spec.md §4.1). Action is a sealed interface: every variant lives in this
package and implements the unexported marker method, so an exhaustive type
switch in the reducer is the only way to consume one — no caller outside
this package can introduce a new variant (spec.md §9: "variants of
Action/Effect are closed sum types... extension is by adding variants").
*/
package action

import (
	"time"

	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/guardrail"
)

// Action is implemented by every action variant. isAction is unexported so
// the set is closed to this package.
type Action interface {
	isAction()
}

type base struct{}

func (base) isAction() {}

// # Connection lifecycle

type TryConnect struct {
	base
	ConnectionID domain.ConnectionId
	DSN          string
	Name         string
}

type ConnectionEstablished struct {
	base
	ConnectionID domain.ConnectionId
	DatabaseName string
}

type ConnectionFailed struct {
	base
	ConnectionID domain.ConnectionId
	Err          error
}

type SwitchConnection struct {
	base
	ConnectionID domain.ConnectionId
	DSN          string
	Name         string
}

type ConnectionSaveFailed struct {
	base
	Err error
}

// ProfilesLoaded delivers the saved connection list for the setup overlay
// (spec.md §6: the filesystem-based connection store).
type ProfilesLoaded struct {
	base
	Profiles []domain.ConnectionProfile
}

// ProfilesLoadFailed surfaces a connection-store read failure as a toast
// rather than blocking the setup overlay from opening.
type ProfilesLoadFailed struct {
	base
	Err error
}

// SelectConnectionProfile connects to (or switches to) the profile at
// Index in state.ConnectionProfiles, resolving its DSN first.
type SelectConnectionProfile struct {
	base
	Index int
}

// MoveConnectionSetupCursor shifts the setup overlay's selected row by
// Delta, clamped to the current profile list's bounds.
type MoveConnectionSetupCursor struct {
	base
	Delta int
}

// # Overlay / input-mode navigation

type OpenOverlay struct {
	base
	Mode string // mirrors state.InputMode values
}

type CloseOverlay struct{ base }

type Escape struct{ base }

// # Explorer / table selection

type SelectTable struct {
	base
	Schema, Table string
}

// # Metadata load (foreground)

type MetadataLoaded struct {
	base
	Metadata   domain.DatabaseMetadata
	Generation uint64
}

type MetadataFailed struct {
	base
	Err        error
	Generation uint64
}

// # Table detail load (foreground + prefetch)

type TableDetailLoaded struct {
	base
	Table      domain.Table
	Generation uint64
}

type TableDetailFailed struct {
	base
	Schema, Table string
	Err           error
	Generation    uint64
}

type TableDetailCached struct {
	base
	QualifiedName string
}

type TableDetailAlreadyCached struct {
	base
	QualifiedName string
}

type TableDetailCacheFailed struct {
	base
	QualifiedName string
	Err           error
}

// # Query execution (preview + ad-hoc)

type ExecutePreview struct {
	base
	Schema, Table string
	Direction     int // -1 previous page, 0 reload current page, +1 next page
	Generation    uint64
}

type ExecuteAdhoc struct {
	base
	SQL        string
	Generation uint64
}

type QueryCompleted struct {
	base
	Result     *domain.QueryResult
	Generation uint64
}

type QueryFailed struct {
	base
	Err        error
	Generation uint64
}

// # SQL modal input and completion

type SqlModalInput struct {
	base
	Text   string
	Cursor int
}

// # Command line & palette

// CommandLineInput sets the ":"-prefixed command buffer verbatim (spec.md
// §4.9), mirroring SqlModalInput's "reducer never edits strings" stance.
type CommandLineInput struct {
	base
	Text string
}

// SubmitCommandLine parses the current command-line buffer against the
// closed command set (spec.md §4.9) and resolves it to the corresponding
// effect, or drops it as Command::Unknown.
type SubmitCommandLine struct{ base }

// PaletteSelect runs the command at Index in the command palette's static
// list (spec.md §4.9). An out-of-range index is a no-op.
type PaletteSelect struct {
	base
	Index int
}

type CompletionUpdated struct {
	base
	Candidates []CompletionCandidate
}

// CompletionCandidate mirrors the completion engine's ranked result
// (spec.md §4.3); duplicated here (not imported from internal/completion)
// to keep action a leaf package with no dependency on the engine.
type CompletionCandidate struct {
	Text  string
	Kind  string
	Score int
}

// # Cell edit / write guardrail

type SubmitCellEdit struct {
	base
	Edit guardrail.CellEdit
}

type ConfirmWrite struct {
	base
	Preview guardrail.WritePreview
}

type WriteCompleted struct {
	base
	Result domain.WriteExecutionResult
}

type WriteFailed struct {
	base
	Err error
}

// # ER diagram

type OpenErDiagram struct {
	base
	SeedTable *string
}

type ErDiagramOpened struct {
	base
	Path string
}

type ErDiagramFailed struct {
	base
	Err error
}

// # Render / tick

type Tick struct {
	base
	Now time.Time
}

type RenderRequested struct{ base }
