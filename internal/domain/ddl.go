// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package domain

import (
	"fmt"
	"strings"

	"github.com/taibuivan/pgview/internal/sqlquote"
)

// DDL reconstructs a CREATE TABLE statement for the inspector's "DDL" tab
// (spec.md §1 names the tab but leaves its generation undefined — grounded
// here on the table's own columns/PK/indexes/FKs, reusing the guardrail's
// quoting rules per SPEC_FULL.md §6).
func (t Table) DDL() string {
	var b strings.Builder

	fmt.Fprintf(&b, "CREATE TABLE %s (\n", sqlquote.QualifiedIdent(t.Schema, t.Name))

	lines := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		line := "    " + sqlquote.Ident(c.Name) + " " + c.DataType
		if !c.Nullable {
			line += " NOT NULL"
		}
		if c.Default != nil {
			line += " DEFAULT " + *c.Default
		}
		lines = append(lines, line)
	}
	if len(t.PrimaryKey) > 0 {
		quoted := make([]string, len(t.PrimaryKey))
		for i, col := range t.PrimaryKey {
			quoted[i] = sqlquote.Ident(col)
		}
		lines = append(lines, "    PRIMARY KEY ("+strings.Join(quoted, ", ")+")")
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);")

	for _, fk := range t.ForeignKeys {
		cols := make([]string, len(fk.Columns))
		for i, c := range fk.Columns {
			cols[i] = sqlquote.Ident(c)
		}
		refCols := make([]string, len(fk.ReferencedColumns))
		for i, c := range fk.ReferencedColumns {
			refCols[i] = sqlquote.Ident(c)
		}
		fmt.Fprintf(&b, "\nALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s);",
			sqlquote.QualifiedIdent(t.Schema, t.Name),
			sqlquote.Ident(fk.ConstraintName),
			strings.Join(cols, ", "),
			sqlquote.QualifiedIdent(fk.ReferencedSchema, fk.ReferencedTable),
			strings.Join(refCols, ", "),
		)
	}

	for _, idx := range t.Indexes {
		if idx.IsPrimary {
			continue
		}
		unique := ""
		if idx.IsUnique {
			unique = "UNIQUE "
		}
		cols := make([]string, len(idx.Columns))
		for i, c := range idx.Columns {
			cols[i] = sqlquote.Ident(c)
		}
		fmt.Fprintf(&b, "\nCREATE %sINDEX %s ON %s USING %s (%s);",
			unique,
			sqlquote.Ident(idx.Name),
			sqlquote.QualifiedIdent(t.Schema, t.Name),
			idx.Method,
			strings.Join(cols, ", "),
		)
	}

	return b.String()
}
