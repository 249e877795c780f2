// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reducer

import (
	"time"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/state"
)

// handleMetadataLoaded installs a freshly fetched catalog scan. A stale
// generation only leaves the fetch's result available to the completion
// engine via its own cache path (handled by the effect runner, which
// populates the completion engine directly); the reducer drops the UI
// state change entirely (spec.md §4.1).
func handleMetadataLoaded(s *state.AppState, act action.MetadataLoaded) []effect.Effect {
	if s.IsStale(act.Generation) {
		return nil
	}

	s.View.Metadata = &act.Metadata
	s.Runtime.ConnectionState = state.ConnectionConnected
	s.Runtime.DatabaseName = act.Metadata.DatabaseName
	s.Runtime.ConnectionError = nil

	// ER preparation resets whenever the metadata snapshot changes
	// (spec.md §3 Lifecycles).
	s.ErState = state.ErPreparation{}
	return nil
}

// handleMetadataFailed surfaces a catalog-scan failure.
func handleMetadataFailed(s *state.AppState, act action.MetadataFailed, now time.Time) []effect.Effect {
	if s.IsStale(act.Generation) {
		return nil
	}
	s.Runtime.ConnectionState = state.ConnectionFailed
	s.Runtime.ConnectionError = classifyConnectionError(act.Err)
	setError(s, now, s.Runtime.ConnectionError.Message)
	return nil
}

// handleTableDetailLoaded installs the detail for the foreground selection
// (never the prefetch path — that goes through TableDetailCached).
func handleTableDetailLoaded(s *state.AppState, act action.TableDetailLoaded) []effect.Effect {
	if s.IsStale(act.Generation) {
		return nil
	}
	s.View.TableDetail = &act.Table
	return nil
}

// handleTableDetailFailed surfaces a foreground table-detail load failure.
func handleTableDetailFailed(s *state.AppState, act action.TableDetailFailed, now time.Time) []effect.Effect {
	if s.IsStale(act.Generation) {
		return nil
	}
	setError(s, now, act.Err.Error())
	return nil
}

// handleTableDetailCached marks a prefetched table resolved in the ER
// coordinator (spec.md §4.4/§4.2 PrefetchTableDetail).
func handleTableDetailCached(s *state.AppState, act action.TableDetailCached) []effect.Effect {
	return advanceErCoordinator(s, act.QualifiedName, true, "")
}

// handleTableDetailAlreadyCached marks a table resolved without having
// re-fetched it (the completion engine's LRU already held it).
func handleTableDetailAlreadyCached(s *state.AppState, act action.TableDetailAlreadyCached) []effect.Effect {
	return advanceErCoordinator(s, act.QualifiedName, true, "")
}

// handleTableDetailCacheFailed records a prefetch failure in the ER
// coordinator's failed set (spec.md §4.4 retry semantics).
func handleTableDetailCacheFailed(s *state.AppState, act action.TableDetailCacheFailed) []effect.Effect {
	return advanceErCoordinator(s, act.QualifiedName, false, act.Err.Error())
}

// advanceErCoordinator resolves one table in the active ER coordinator (if
// any) and, if that was the last table to resolve, emits
// GenerateErDiagramFromCache or WriteErFailureLog per spec.md §4.4's
// completion rule, then draws the next bounded prefetch batch.
func advanceErCoordinator(s *state.AppState, qualifiedName string, ok bool, errMessage string) []effect.Effect {
	coord := s.ErState.Coordinator
	if coord == nil {
		return nil
	}
	if ok {
		coord.MarkCached(qualifiedName)
	} else {
		coord.MarkFailed(qualifiedName, errMessage)
	}

	if !coord.Complete() {
		return []effect.Effect{effect.ProcessPrefetchQueue{}}
	}

	if failed := coord.Failed(); len(failed) > 0 {
		// CacheDir is left empty: resolving it means calling the
		// ConfigWriter port, which the reducer (no I/O) cannot do. The
		// effect runner fills it in before writing the log.
		return []effect.Effect{effect.WriteErFailureLog{FailedTables: failed}}
	}

	total := 0
	if s.View.Metadata != nil {
		total = len(s.View.Metadata.Tables)
	}
	return []effect.Effect{effect.GenerateErDiagramFromCache{
		TotalTables: total,
		ProjectName: s.ProjectName,
		TargetTable: s.ErState.SeedTable,
	}}
}

