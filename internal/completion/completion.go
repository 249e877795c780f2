// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package completion implements the SQL modal's completion engine (spec.md
§4.3): a bounded LRU of cached table details plus a best-effort prefix
classifier over {Keyword, Table, Column}. It intentionally does not parse
SQL — the FROM-clause scan is a simple token scan, matching the spec's
"best-effort prefix parse — not full SQL parsing".
*/
package completion

import (
	"sort"
	"strings"

	"github.com/taibuivan/pgview/internal/cache"
	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/platform/constants"
)

// Kind classifies a completion candidate (spec.md §4.3).
type Kind string

const (
	KindKeyword Kind = "keyword"
	KindTable   Kind = "table"
	KindColumn  Kind = "column"
)

// kindPriority orders candidates by kind: Keyword first, then Table, then
// Column, matching "Keyword... ranked first when the prefix starts a
// clause".
var kindPriority = map[Kind]int{KindKeyword: 0, KindTable: 1, KindColumn: 2}

// Candidate is one ranked completion suggestion.
type Candidate struct {
	Text  string
	Kind  Kind
	Score int
}

// keywords is the hard-coded SQL keyword set candidates are drawn from.
var keywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "LEFT", "RIGHT", "INNER", "OUTER",
	"ON", "GROUP", "BY", "ORDER", "HAVING", "LIMIT", "OFFSET", "INSERT",
	"INTO", "VALUES", "UPDATE", "SET", "DELETE", "AND", "OR", "NOT", "NULL",
	"IS", "IN", "AS", "DISTINCT", "UNION", "ALL",
}

// Engine holds the completion cache and ranks candidates for one SQL modal
// session.
type Engine struct {
	tableCache *cache.BoundedLRU[string, domain.Table]
	mru        []string // recently accepted column names, most-recent first
	maxResults int
}

// NewEngine constructs an Engine with the given table-detail cache
// capacity and result truncation limit (spec.md §4.3: "capacity e.g. 256",
// "truncated to a configured maximum (e.g., 50)").
func NewEngine(capacity, maxResults int) (*Engine, error) {
	tableCache, err := cache.NewBoundedLRU[string, domain.Table](capacity)
	if err != nil {
		return nil, err
	}
	return &Engine{tableCache: tableCache, maxResults: maxResults}, nil
}

// CacheTable stores table in the LRU, keyed by its qualified name.
func (e *Engine) CacheTable(table domain.Table) {
	e.tableCache.Add(table.QualifiedName(), table)
}

// CachedTable looks up a previously cached table by qualified name.
func (e *Engine) CachedTable(qualifiedName string) (domain.Table, bool) {
	return e.tableCache.Get(qualifiedName)
}

// CachedTables returns every table detail currently in the LRU, used by ER
// diagram generation once the coordinator reports every seed resolved
// (spec.md §4.4).
func (e *Engine) CachedTables() []domain.Table {
	keys := e.tableCache.Keys()
	tables := make([]domain.Table, 0, len(keys))
	for _, k := range keys {
		if t, ok := e.tableCache.Get(k); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// AcceptColumn records name as recently accepted, boosting its rank on
// subsequent completions (bounded MRU list, spec.md §4.3).
func (e *Engine) AcceptColumn(name string) {
	for i, existing := range e.mru {
		if existing == name {
			e.mru = append(e.mru[:i], e.mru[i+1:]...)
			break
		}
	}
	e.mru = append([]string{name}, e.mru...)
	if len(e.mru) > constants.CompletionMRUCapacity {
		e.mru = e.mru[:constants.CompletionMRUCapacity]
	}
}

// Complete classifies prefix and ranks candidates against fromTables (the
// tables referenced in the current statement's FROM clause) and the
// metadata known schemas/tables.
func (e *Engine) Complete(prefix string, metadata domain.DatabaseMetadata, fromTables []string) []Candidate {
	upperPrefix := strings.ToUpper(prefix)
	var candidates []Candidate

	for _, kw := range keywords {
		if strings.HasPrefix(kw, upperPrefix) {
			candidates = append(candidates, Candidate{Text: kw, Kind: KindKeyword, Score: len(kw) - len(upperPrefix)})
		}
	}

	for _, t := range metadata.Tables {
		if matchesTablePrefix(t, prefix) {
			candidates = append(candidates, Candidate{Text: t.QualifiedName(), Kind: KindTable, Score: 0})
		}
	}

	for _, qualified := range fromTables {
		table, ok := e.tableCache.Get(qualified)
		if !ok {
			continue
		}
		for _, col := range table.Columns {
			if !strings.HasPrefix(strings.ToLower(col.Name), strings.ToLower(prefix)) {
				continue
			}
			score := 0
			if boost := e.mruBoost(col.Name); boost > 0 {
				score = boost
			}
			candidates = append(candidates, Candidate{Text: col.Name, Kind: KindColumn, Score: score})
		}
	}

	rank(candidates)

	if e.maxResults > 0 && len(candidates) > e.maxResults {
		candidates = candidates[:e.maxResults]
	}
	return candidates
}

func matchesTablePrefix(t domain.TableSummary, prefix string) bool {
	lower := strings.ToLower(prefix)
	return strings.HasPrefix(strings.ToLower(t.Name), lower) ||
		strings.HasPrefix(strings.ToLower(t.QualifiedName()), lower)
}

// mruBoost returns a positive score the closer name is to the front of
// the MRU list, 0 if absent.
func (e *Engine) mruBoost(name string) int {
	for i, existing := range e.mru {
		if existing == name {
			return len(e.mru) - i
		}
	}
	return 0
}

// rank sorts candidates by (kind_priority, score desc, lexical), a total
// order with ties broken by Go's stable sort preserving insertion order
// (spec.md §4.3).
func rank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if kindPriority[a.Kind] != kindPriority[b.Kind] {
			return kindPriority[a.Kind] < kindPriority[b.Kind]
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Text < b.Text
	})
}
