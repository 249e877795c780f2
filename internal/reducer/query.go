// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reducer

import (
	"time"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/platform/constants"
	"github.com/taibuivan/pgview/internal/state"
)

// handleExecutePreview advances or reloads the current table's pagination
// cursor (spec.md §4.5 "can_next"/"can_prev" gated nav) and re-issues the
// preview query at the resulting offset. A direction that is not actually
// available (e.g. Next past reached_end) is silently clamped by leaving the
// page unchanged, since [pagination.State.Next]/[Prev] are the only mutators
// and the caller is expected to have already checked CanNext/CanPrev.
func handleExecutePreview(s *state.AppState, act action.ExecutePreview) []effect.Effect {
	page := s.View.Pagination
	switch {
	case act.Direction > 0 && page.CanNext():
		page = page.Next()
	case act.Direction < 0 && page.CanPrev():
		page = page.Prev()
	}
	s.View.Pagination = page

	generation := s.NextGeneration()
	return []effect.Effect{effect.ExecutePreview{
		DSN: s.Runtime.DSN, Schema: act.Schema, Table: act.Table,
		Offset: page.Offset(), Limit: page.Limit(),
		Generation: generation,
	}}
}

// handleExecuteAdhoc runs a user-authored SQL statement from the SQL modal.
func handleExecuteAdhoc(s *state.AppState, act action.ExecuteAdhoc) []effect.Effect {
	generation := s.NextGeneration()
	return []effect.Effect{effect.ExecuteAdhoc{DSN: s.Runtime.DSN, SQL: act.SQL, Generation: generation}}
}

// handleQueryCompleted installs a result as the current view and, for an
// ad-hoc query, pushes it onto the bounded history ring (spec.md §3
// invariant: "history ring capacity 20").
func handleQueryCompleted(s *state.AppState, act action.QueryCompleted) []effect.Effect {
	if s.IsStale(act.Generation) {
		return nil
	}

	s.View.QueryResult = act.Result
	s.View.HistoryIndex = nil

	if act.Result.Source == domain.QuerySourceAdhoc {
		s.View.ResultHistory = append(s.View.ResultHistory, act.Result)
		if len(s.View.ResultHistory) > constants.ResultHistoryCapacity {
			s.View.ResultHistory = s.View.ResultHistory[len(s.View.ResultHistory)-constants.ResultHistoryCapacity:]
		}
	} else {
		s.View.Pagination = s.View.Pagination.WithResult(act.Result.RowCount, nil)
	}
	return nil
}

// handleQueryFailed surfaces a query-execution failure.
func handleQueryFailed(s *state.AppState, act action.QueryFailed, now time.Time) []effect.Effect {
	if s.IsStale(act.Generation) {
		return nil
	}
	setError(s, now, act.Err.Error())
	return nil
}
