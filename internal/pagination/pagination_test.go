// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pgview/internal/pagination"
)

/*
TestState_Scenario reproduces spec.md §8 scenario 6:
PaginationState{current_page:0, total:Some(1001)} => total_pages_estimate =
Some(3), can_next = true, can_prev = false.
*/
func TestState_Scenario(t *testing.T) {
	total := int64(1001)
	s := pagination.New("public", "events")
	s.TotalRowsEstimate = &total

	pages := s.TotalPagesEstimate()
	if assert.NotNil(t, pages) {
		assert.Equal(t, int64(3), *pages)
	}
	assert.True(t, s.CanNext())
	assert.False(t, s.CanPrev())
}

func TestState_TotalPagesEstimate_Unknown(t *testing.T) {
	s := pagination.New("public", "events")
	assert.Nil(t, s.TotalPagesEstimate())
}

func TestState_TotalPagesEstimate_ClampsToOne(t *testing.T) {
	zero := int64(0)
	s := pagination.New("public", "events")
	s.TotalRowsEstimate = &zero

	pages := s.TotalPagesEstimate()
	if assert.NotNil(t, pages) {
		assert.Equal(t, int64(1), *pages)
	}
}

func TestState_NextPrev_ReachedEnd(t *testing.T) {
	s := pagination.New("public", "events")

	s = s.WithResult(500, nil)
	assert.False(t, s.ReachedEnd)
	assert.True(t, s.CanNext())

	s = s.Next()
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, 500, s.Offset())

	s = s.WithResult(200, nil)
	assert.True(t, s.ReachedEnd)
	assert.False(t, s.CanNext())

	s = s.Prev()
	assert.Equal(t, 0, s.CurrentPage)
	assert.False(t, s.CanPrev())

	s = s.Prev()
	assert.Equal(t, 0, s.CurrentPage)
}
