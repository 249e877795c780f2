// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reducer

import (
	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/pagination"
	"github.com/taibuivan/pgview/internal/state"
)

// handleSelectTable moves the explorer cursor onto schema.table, resets
// pagination to its first page (spec.md §4.5 "freshly selected table"),
// and requests the table's detail under a freshly minted generation.
func handleSelectTable(s *state.AppState, act action.SelectTable) []effect.Effect {
	qualified := domain.Table{Schema: act.Schema, Name: act.Table}.QualifiedName()
	s.View.ExplorerSelected = &qualified
	s.View.CurrentTable = &qualified
	s.View.Pagination = pagination.Reset(act.Schema, act.Table)

	generation := s.NextGeneration()
	return []effect.Effect{
		effect.FetchTableDetail{DSN: s.Runtime.DSN, Schema: act.Schema, Table: act.Table, Generation: generation},
		effect.ExecutePreview{
			DSN: s.Runtime.DSN, Schema: act.Schema, Table: act.Table,
			Offset: s.View.Pagination.Offset(), Limit: s.View.Pagination.Limit(),
			Generation: generation,
		},
	}
}
