// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package effect defines the closed set of side effects the reducer requests
(spec.md §4.2). Like [action.Action], Effect is a sealed interface: every
variant lives here and implements the unexported marker method, so the
effect runner's dispatch is an exhaustive type switch over a fixed set.
*/
package effect

import "github.com/taibuivan/pgview/internal/action"

// Effect is implemented by every effect variant.
type Effect interface {
	isEffect()
}

type base struct{}

func (base) isEffect() {}

// Exclusive reports whether an effect must run alone, serializing the rest
// of the loop around it (spec.md §4.2: OpenConsole "must not run in
// parallel with any other effect").
func Exclusive(e Effect) bool {
	_, ok := e.(OpenConsole)
	return ok
}

// Render asks the Renderer port to redraw the UI.
type Render struct{ base }

// CacheInvalidate removes every metadata cache entry for dsn.
type CacheInvalidate struct {
	base
	DSN string
}

// CacheCleanup is the TTL-cache sweep effect. Nothing emits it and the
// runner treats it as a no-op: expired metadata entries are dropped when
// next read, not on a periodic timer.
type CacheCleanup struct{ base }

// FetchMetadata scans dsn's catalog, emitting MetadataLoaded or MetadataFailed.
type FetchMetadata struct {
	base
	DSN        string
	Generation uint64
}

// FetchTableDetail loads one table's full detail into state.table_detail.
type FetchTableDetail struct {
	base
	DSN, Schema, Table string
	Generation         uint64
}

// PrefetchTableDetail populates the completion cache only; never touches
// state.table_detail.
type PrefetchTableDetail struct {
	base
	DSN, Schema, Table string
}

// ProcessPrefetchQueue pops up to the configured concurrency's worth of
// items from the prefetch queue and dispatches PrefetchTableDetail effects.
type ProcessPrefetchQueue struct{ base }

// ExecutePreview runs a table preview query (OFFSET/LIMIT per
// [internal/pagination]).
type ExecutePreview struct {
	base
	DSN, Schema, Table string
	Offset, Limit      int
	Generation         uint64
}

// ExecuteAdhoc runs a user-supplied SQL statement.
type ExecuteAdhoc struct {
	base
	DSN, SQL   string
	Generation uint64
}

// ExecuteWrite runs a guardrail-approved UPDATE statement.
type ExecuteWrite struct {
	base
	DSN, SQL string
}

// OpenConsole suspends the TUI and execs an interactive sub-console
// (exclusive: see [Exclusive]).
type OpenConsole struct {
	base
	DSN, ProjectName string
}

// GenerateErDiagramFromCache renders an ER diagram from already-cached
// table details.
type GenerateErDiagramFromCache struct {
	base
	TotalTables int
	ProjectName string
	TargetTable *string
}

// WriteErFailureLog writes a non-fatal diagnostic log for tables the ER
// coordinator failed to prefetch.
type WriteErFailureLog struct {
	base
	FailedTables map[string]string
	CacheDir     string
}

// ScheduleCompletionDebounce arms the debounce deadline the dispatch loop
// waits on before firing TriggerCompletion.
type ScheduleCompletionDebounce struct {
	base
	TriggerAtUnixMs int64
}

// TriggerCompletion runs the completion engine against current editor
// state and emits CompletionUpdated.
type TriggerCompletion struct{ base }

// Sequence runs its effects in strict order (e.g. CacheInvalidate before
// FetchMetadata).
type Sequence struct {
	base
	Effects []Effect
}

// DispatchActions feeds actions back into the reducer without any I/O.
type DispatchActions struct {
	base
	Actions []action.Action
}

// Quit ends the program (spec.md §4.9 "q/quit" command). No I/O of its
// own; the kernel turns this straight into a tea.Quit command.
type Quit struct{ base }

// LoadConnectionProfiles reads every saved profile from the connection
// store, emitting ProfilesLoaded or ProfilesLoadFailed.
type LoadConnectionProfiles struct{ base }
