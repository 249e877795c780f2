// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package domain

import "time"

// QuerySource classifies where a [QueryResult] came from.
type QuerySource string

const (
	QuerySourcePreview QuerySource = "preview"
	QuerySourceAdhoc   QuerySource = "adhoc"
)

// QueryResult is the immutable outcome of running one query. It is shared by
// reference between the current view and the result-history ring.
type QueryResult struct {
	Query           string
	Columns         []string
	Rows            [][]string
	RowCount        int
	ExecutionTimeMs int64
	ExecutedAt      time.Time
	Source          QuerySource
	Error           *string
}

// WriteExecutionResult is the outcome of an UPDATE issued through the write
// guardrail pipeline (spec.md §6, QueryExecutor.execute_write).
type WriteExecutionResult struct {
	AffectedRows    int64
	ExecutionTimeMs int64
}
