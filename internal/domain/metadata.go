// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package domain

import "time"

// TableSummary is the lightweight per-table row in a [DatabaseMetadata] scan.
type TableSummary struct {
	Schema            string
	Name              string
	RowCountEstimate  *int64
	HasRLS            bool
}

// QualifiedName returns "schema.name".
func (t TableSummary) QualifiedName() string {
	return t.Schema + "." + t.Name
}

// DatabaseMetadata is the immutable result of a single catalog scan.
type DatabaseMetadata struct {
	DatabaseName string
	Schemas      []string
	Tables       []TableSummary
	FetchedAt    time.Time
}

// FindTable looks up a [TableSummary] by qualified name ("schema.name").
func (m DatabaseMetadata) FindTable(qualifiedName string) (TableSummary, bool) {
	for _, t := range m.Tables {
		if t.QualifiedName() == qualifiedName {
			return t, true
		}
	}
	return TableSummary{}, false
}

// # Table detail

// Column describes one column of a [Table].
type Column struct {
	Name             string
	OrdinalPosition  int
	DataType         string
	Nullable         bool
	Default          *string
	IsPrimaryKey     bool
	IsUnique         bool
	Comment          *string
}

// Index describes one index on a [Table].
type Index struct {
	Name      string
	Columns   []string
	IsUnique  bool
	IsPrimary bool
	Method    string // e.g. "btree", "gin", "hash"
}

// ForeignKey describes one outbound foreign key from a [Table].
type ForeignKey struct {
	ConstraintName   string
	Columns          []string
	ReferencedSchema string
	ReferencedTable  string
	ReferencedColumns []string
	OnDelete         string
	OnUpdate         string
}

// Policy is a single row-level-security policy, modeled on PostgreSQL's
// pg_policies catalog view (the natural source of these fields: there is
// no spec-level enumeration to follow, and the original distillation carries
// no non-Go source to consult for this detail — see DESIGN.md).
type Policy struct {
	Name       string
	Command    string // e.g. "ALL", "SELECT", "INSERT"
	Permissive bool
	Roles      []string
	Using      *string
	WithCheck  *string
}

// RlsInfo describes row-level security configuration for a [Table].
type RlsInfo struct {
	Enabled  bool
	Forced   bool
	Policies []Policy
}

// Trigger describes one trigger attached to a [Table].
type Trigger struct {
	Name      string
	Timing    string // "BEFORE", "AFTER", "INSTEAD OF"
	Events    []string
	Function  string
}

// Table carries the full set of descriptors for one relation.
type Table struct {
	Schema           string
	Name             string
	Columns          []Column
	PrimaryKey       []string
	ForeignKeys      []ForeignKey
	Indexes          []Index
	RLS              *RlsInfo
	Triggers         []Trigger
	RowCountEstimate *int64
	Comment          *string
}

// QualifiedName returns "schema.name".
func (t Table) QualifiedName() string {
	return t.Schema + "." + t.Name
}

// ColumnNames returns the column names in ordinal order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
