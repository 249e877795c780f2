// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guardrail turns a single cell edit into a reviewable UPDATE
statement and refuses to let it run unattended unless the edit can be
traced back to exactly one row (spec.md §4.6).

Architecture:

  - CellEdit: the raw input — schema, table, column, new value, and the
    row's known column values.
  - Risk: the classification a WritePreview carries into its confirm dialog.
  - BuildWritePreview: the single entry point; never returns an executable
    preview without a safe WHERE clause.
*/
package guardrail

import (
	"strings"

	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/sqlquote"
)

// Risk classifies how dangerous a generated UPDATE is to run unattended.
type Risk string

const (
	RiskLow  Risk = "low"
	RiskHigh Risk = "high"
)

// NullLiteral is the sentinel new_value that generates a SQL NULL rather
// than a quoted literal (spec.md §4.6 step 3).
const NullLiteral = "NULL"

// CellEdit describes a single cell the user changed in the preview grid.
type CellEdit struct {
	Schema   string
	Table    string
	Column   string
	NewValue string
	Row      map[string]string
}

// Guardrail is the risk verdict attached to a WritePreview.
type Guardrail struct {
	Risk    Risk
	Blocked bool
	Reason  string
}

// WritePreview is the confirm-dialog payload: the generated SQL, a summary
// of its target, and the guardrail verdict gating execution.
type WritePreview struct {
	Operation     string
	SQL           string
	TargetSummary string
	Diff          string
	Guardrail     Guardrail
}

// BuildWritePreview classifies edit against table's primary key and, when
// safe, generates the UPDATE statement (spec.md §4.6).
func BuildWritePreview(edit CellEdit, table domain.Table) WritePreview {
	pkPairs, hasStableRowIdentity := extractPKPairs(edit, table)

	if !hasStableRowIdentity {
		return WritePreview{
			Operation:     "UPDATE",
			TargetSummary: domain.Table{Schema: edit.Schema, Name: edit.Table}.QualifiedName(),
			Guardrail: Guardrail{
				Risk:    RiskHigh,
				Blocked: true,
				Reason:  "Stable row identity is missing",
			},
		}
	}

	where := buildWhereClause(pkPairs)
	sql := buildUpdateSQL(edit.Schema, edit.Table, edit.Column, edit.NewValue, where)

	guard := Guardrail{Risk: RiskLow, Blocked: false}
	if where == "" {
		guard = Guardrail{Risk: RiskHigh, Blocked: true, Reason: "WHERE clause is missing"}
	}

	return WritePreview{
		Operation:     "UPDATE",
		SQL:           sql,
		TargetSummary: domain.Table{Schema: edit.Schema, Name: edit.Table}.QualifiedName(),
		Diff:          edit.Column + ": " + sqlquote.DisplayEscape(edit.NewValue),
		Guardrail:     guard,
	}
}

// pkPair is one (column, value) pair identifying the edited row.
type pkPair struct {
	Column string
	Value  string
}

// extractPKPairs pulls the primary-key column values out of edit.Row. A
// table with no primary key, or a row missing one of the PK columns, has no
// stable row identity (spec.md §4.6 step 1).
func extractPKPairs(edit CellEdit, table domain.Table) ([]pkPair, bool) {
	if len(table.PrimaryKey) == 0 {
		return nil, false
	}

	pairs := make([]pkPair, 0, len(table.PrimaryKey))
	for _, col := range table.PrimaryKey {
		val, ok := edit.Row[col]
		if !ok {
			return nil, false
		}
		pairs = append(pairs, pkPair{Column: col, Value: val})
	}
	return pairs, true
}

// buildWhereClause AND-joins "col" = 'val' for each pk pair.
func buildWhereClause(pairs []pkPair) string {
	if len(pairs) == 0 {
		return ""
	}

	clauses := make([]string, len(pairs))
	for i, p := range pairs {
		clauses[i] = sqlquote.Ident(p.Column) + " = " + sqlquote.Literal(p.Value)
	}
	return strings.Join(clauses, " AND ")
}

// buildUpdateSQL generates the literal UPDATE statement (spec.md §8
// scenario 5): build_update_sql("public","users","name","O'Reilly",
// [("id","42")]) => UPDATE "public"."users"\nSET "name" = 'O''Reilly'\n
// WHERE "id" = '42';
func buildUpdateSQL(schema, table, column, newValue, where string) string {
	expr := NullLiteral
	if newValue != NullLiteral {
		expr = sqlquote.Literal(newValue)
	}

	var b strings.Builder
	b.WriteString("UPDATE " + sqlquote.QualifiedIdent(schema, table) + "\n")
	b.WriteString("SET " + sqlquote.Ident(column) + " = " + expr + "\n")
	b.WriteString("WHERE " + where + ";")
	return b.String()
}

// BuildUpdateSQL exposes the bare SQL-generation step (spec.md §8
// scenario 5) independent of the guardrail's risk classification, for
// direct unit testing and for callers that already know the PK pairs.
func BuildUpdateSQL(schema, table, column, newValue string, pkPairs []struct{ Col, Val string }) string {
	pairs := make([]pkPair, len(pkPairs))
	for i, p := range pkPairs {
		pairs[i] = pkPair{Column: p.Col, Value: p.Val}
	}
	return buildUpdateSQL(schema, table, column, newValue, buildWhereClause(pairs))
}
