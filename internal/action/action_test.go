// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pgview/internal/action"
)

// TestAction_TypeSwitch exercises the exhaustive type switch shape the
// reducer relies on: every variant must be distinguishable by type alone.
func TestAction_TypeSwitch(t *testing.T) {
	actions := []action.Action{
		action.TryConnect{},
		action.SelectTable{Schema: "public", Table: "users"},
		action.MetadataLoaded{Generation: 3},
		action.QueryFailed{Generation: 1},
		action.RenderRequested{},
	}

	kinds := make([]string, 0, len(actions))
	for _, a := range actions {
		switch v := a.(type) {
		case action.TryConnect:
			kinds = append(kinds, "try_connect")
		case action.SelectTable:
			kinds = append(kinds, "select_table:"+v.Schema+"."+v.Table)
		case action.MetadataLoaded:
			kinds = append(kinds, "metadata_loaded")
		case action.QueryFailed:
			kinds = append(kinds, "query_failed")
		case action.RenderRequested:
			kinds = append(kinds, "render")
		default:
			t.Fatalf("unhandled action variant: %T", v)
		}
	}

	assert.Equal(t, []string{
		"try_connect", "select_table:public.users", "metadata_loaded", "query_failed", "render",
	}, kinds)
}
