// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reducer

import (
	"time"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/ergraph"
	"github.com/taibuivan/pgview/internal/state"
)

// handleOpenErDiagram starts ER preparation: if a coordinator from a prior
// request is still around and has failures, those are retried in place
// (spec.md §4.4); otherwise a fresh coordinator seeds from every known
// table. A seed table is only recorded as the diagram's target (it names
// the output file); it does not narrow the tables prefetched or exported.
func handleOpenErDiagram(s *state.AppState, act action.OpenErDiagram) []effect.Effect {
	if s.View.Metadata == nil {
		return nil
	}

	if coord := s.ErState.Coordinator; coord != nil && len(coord.Failed()) > 0 {
		coord.Retry()
		return []effect.Effect{effect.ProcessPrefetchQueue{}}
	}

	seeds := make([]string, 0, len(s.View.Metadata.Tables))
	for _, t := range s.View.Metadata.Tables {
		seeds = append(seeds, t.QualifiedName())
	}

	s.ErState = state.ErPreparation{
		Coordinator: ergraph.NewCoordinator(seeds),
		SeedTable:   act.SeedTable,
	}
	return []effect.Effect{effect.ProcessPrefetchQueue{}}
}

// handleErDiagramOpened reports a successfully exported diagram.
func handleErDiagramOpened(s *state.AppState, act action.ErDiagramOpened, now time.Time) []effect.Effect {
	setSuccess(s, now, "ER diagram exported to "+act.Path)
	return nil
}

// handleErDiagramFailed surfaces a GraphViz export failure.
func handleErDiagramFailed(s *state.AppState, act action.ErDiagramFailed, now time.Time) []effect.Effect {
	setError(s, now, act.Err.Error())
	return nil
}
