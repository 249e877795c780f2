// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package completion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pgview/internal/completion"
	"github.com/taibuivan/pgview/internal/domain"
)

func sampleMetadata() domain.DatabaseMetadata {
	return domain.DatabaseMetadata{
		DatabaseName: "appdb",
		Tables: []domain.TableSummary{
			{Schema: "public", Name: "users"},
			{Schema: "public", Name: "user_sessions"},
		},
	}
}

func TestComplete_KeywordRankedFirst(t *testing.T) {
	engine, err := completion.NewEngine(16, 50)
	require.NoError(t, err)

	candidates := engine.Complete("SEL", sampleMetadata(), nil)
	require.NotEmpty(t, candidates)
	assert.Equal(t, completion.KindKeyword, candidates[0].Kind)
	assert.Equal(t, "SELECT", candidates[0].Text)
}

func TestComplete_TableCandidates(t *testing.T) {
	engine, err := completion.NewEngine(16, 50)
	require.NoError(t, err)

	candidates := engine.Complete("user", sampleMetadata(), nil)

	var names []string
	for _, c := range candidates {
		if c.Kind == completion.KindTable {
			names = append(names, c.Text)
		}
	}
	assert.Contains(t, names, "public.users")
	assert.Contains(t, names, "public.user_sessions")
}

func TestComplete_ColumnCandidates_BoostedByMRU(t *testing.T) {
	engine, err := completion.NewEngine(16, 50)
	require.NoError(t, err)

	engine.CacheTable(domain.Table{
		Schema: "public", Name: "users",
		Columns: []domain.Column{{Name: "id"}, {Name: "username"}, {Name: "updated_at"}},
	})

	engine.AcceptColumn("updated_at")

	candidates := engine.Complete("u", domain.DatabaseMetadata{}, []string{"public.users"})

	var columnOrder []string
	for _, c := range candidates {
		if c.Kind == completion.KindColumn {
			columnOrder = append(columnOrder, c.Text)
		}
	}
	require.NotEmpty(t, columnOrder)
	assert.Equal(t, "updated_at", columnOrder[0])
}

func TestCachedTables_ReturnsEveryEntry(t *testing.T) {
	engine, err := completion.NewEngine(16, 50)
	require.NoError(t, err)

	engine.CacheTable(domain.Table{Schema: "public", Name: "users"})
	engine.CacheTable(domain.Table{Schema: "public", Name: "orders"})

	tables := engine.CachedTables()
	assert.Len(t, tables, 2)
}

func TestComplete_TruncatesToMax(t *testing.T) {
	engine, err := completion.NewEngine(16, 2)
	require.NoError(t, err)

	candidates := engine.Complete("", sampleMetadata(), nil)
	assert.LessOrEqual(t, len(candidates), 2)
}
