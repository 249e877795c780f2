// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package erexport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/ports"
)

func TestBuildGraph_NodesAndEdges(t *testing.T) {
	tables := []ports.ErTableInfo{
		{Schema: "public", Name: "orders", Columns: []domain.Column{{Name: "id"}, {Name: "user_id"}},
			ForeignKeys: []domain.ForeignKey{
				{ConstraintName: "orders_user_fk", ReferencedSchema: "public", ReferencedTable: "users"},
			}},
		{Schema: "public", Name: "users", Columns: []domain.Column{{Name: "id"}}},
	}

	graph := buildGraph(tables)
	rendered := graph.String()

	assert.True(t, strings.Contains(rendered, "public.orders"))
	assert.True(t, strings.Contains(rendered, "public.users"))
	assert.True(t, strings.Contains(rendered, "orders_user_fk"))
}

func TestNewExporter_DefaultsBinaryName(t *testing.T) {
	e := NewExporter("")
	assert.Equal(t, "dot", e.dotBinary)
}
