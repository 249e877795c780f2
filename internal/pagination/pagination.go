// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pagination tracks the current position inside a single table's
preview result set.

Unlike an HTTP list endpoint's page/limit query parameters, a table preview
has exactly one page size (spec.md §4.5's PREVIEW_PAGE_SIZE) and no client
request to parse: the reducer advances and rewinds a zero-indexed cursor and
asks the query layer whether another page exists.

Architecture:

  - State: the zero-indexed current page plus an optional total-row estimate.
  - Offset/Limit: derive the SQL OFFSET/LIMIT for the next fetch.
  - CanNext/CanPrev: gate the keybindings that move the cursor.

This package keeps a consistent navigation model across every table the
inspector previews.
*/
package pagination

import "github.com/taibuivan/pgview/internal/platform/constants"

// State tracks pagination position for one table preview (spec.md §4.5).
type State struct {
	Schema            string
	Table             string
	CurrentPage       int
	TotalRowsEstimate *int64
	ReachedEnd        bool
}

// New constructs a [State] positioned at the first page of schema.table.
func New(schema, table string) State {
	return State{Schema: schema, Table: table, CurrentPage: 0}
}

// Offset returns the SQL OFFSET for the current page.
func (s State) Offset() int {

	// Page 0 always starts at offset 0; no clamping needed since
	// CurrentPage never goes negative (Prev stops at 0).
	return s.CurrentPage * constants.PreviewPageSize
}

// Limit returns the SQL LIMIT for a page fetch.
func (s State) Limit() int {
	return constants.PreviewPageSize
}

// TotalPagesEstimate returns ceil(total/PAGE_SIZE), clamped to at least 1,
// or nil when the row count is unknown (spec.md §8 scenario 6).
func (s State) TotalPagesEstimate() *int64 {
	if s.TotalRowsEstimate == nil {
		return nil
	}

	total := *s.TotalRowsEstimate
	pageSize := int64(constants.PreviewPageSize)

	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return &pages
}

// CanNext reports whether the next page may be requested.
func (s State) CanNext() bool {
	return !s.ReachedEnd
}

// CanPrev reports whether the previous page may be requested.
func (s State) CanPrev() bool {
	return s.CurrentPage > 0
}

// Next advances to the next page. Callers must check [State.CanNext] first;
// Next does not re-check reached_end so that a just-fetched page's result
// (which determines the new reached_end) can be applied via WithResult
// before the next CanNext check.
func (s State) Next() State {
	s.CurrentPage++
	return s
}

// Prev rewinds to the previous page, clamped at 0.
func (s State) Prev() State {
	if s.CurrentPage > 0 {
		s.CurrentPage--
	}
	return s
}

// WithResult records the outcome of a page fetch: reached_end is set when
// the query returned fewer than PAGE_SIZE rows (spec.md §9's stated design,
// no COUNT(*) polling).
func (s State) WithResult(rowsReturned int, totalEstimate *int64) State {
	s.ReachedEnd = rowsReturned < constants.PreviewPageSize
	s.TotalRowsEstimate = totalEstimate
	return s
}

// Reset returns to page 0 for a freshly selected table, e.g. when the user
// switches tables in the inspector.
func Reset(schema, table string) State {
	return New(schema, table)
}
