// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tuirender_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/state"
	"github.com/taibuivan/pgview/internal/tuirender"
)

func TestBuild_NotConnected_RendersWithoutPanicking(t *testing.T) {
	builder := tuirender.NewBuilder(100, 30)
	s := state.New("pgview")

	frame, output := builder.Build(s)

	assert.NotEmpty(t, frame)
	assert.Equal(t, 100, output.ViewportWidth)
	assert.Equal(t, 30, output.ViewportHeight)
}

func TestBuild_WithMetadataAndSelection_ListsTables(t *testing.T) {
	builder := tuirender.NewBuilder(120, 40)
	s := state.New("pgview")
	selected := "public.users"
	s.View.Metadata = &domain.DatabaseMetadata{
		DatabaseName: "appdb",
		Tables: []domain.TableSummary{
			{Schema: "public", Name: "users"},
			{Schema: "public", Name: "orders"},
		},
	}
	s.View.ExplorerSelected = &selected

	frame, _ := builder.Build(s)
	assert.Contains(t, frame, "appdb")
	assert.Contains(t, frame, "public.orders")
}

func TestDraw_RejectsWrongType(t *testing.T) {
	builder := tuirender.NewBuilder(80, 24)
	_, err := builder.Draw("not a state")
	require.Error(t, err)
}
