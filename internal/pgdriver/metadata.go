// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pgdriver

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/platform/dberr"
)

// Driver implements [ports.MetadataProvider] and [ports.QueryExecutor]
// (spec.md §6) over a DSN-keyed set of pgx pools.
type Driver struct {
	pools *Pools
}

// NewDriver constructs a Driver backed by pools.
func NewDriver(pools *Pools) *Driver {
	return &Driver{pools: pools}
}

// FetchMetadata scans dsn's catalog: every user schema and a row-count
// estimate + RLS flag per table, drawn from pg_class/pg_namespace rather than
// a live COUNT(*) (spec.md §6 supplemented row-count-estimate feature).
func (d *Driver) FetchMetadata(ctx context.Context, dsn string) (domain.DatabaseMetadata, error) {
	pool, err := d.pools.Get(ctx, dsn)
	if err != nil {
		return domain.DatabaseMetadata{}, err
	}

	var databaseName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&databaseName); err != nil {
		return domain.DatabaseMetadata{}, dberr.Wrap(err, "fetch current_database")
	}

	schemaRows, err := pool.Query(ctx, `
		SELECT schema_name FROM information_schema.schemata
		WHERE schema_name NOT IN ('pg_catalog', 'information_schema')
		  AND schema_name NOT LIKE 'pg_toast%'
		ORDER BY schema_name`)
	if err != nil {
		return domain.DatabaseMetadata{}, dberr.Wrap(err, "list schemas")
	}
	schemas, err := pgx.CollectRows(schemaRows, pgx.RowTo[string])
	if err != nil {
		return domain.DatabaseMetadata{}, dberr.Wrap(err, "collect schemas")
	}

	tableRows, err := pool.Query(ctx, `
		SELECT
			n.nspname AS schema,
			c.relname AS name,
			NULLIF(c.reltuples, -1)::bigint AS row_count_estimate,
			c.relrowsecurity AS has_rls
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE c.relkind IN ('r', 'p')
		  AND n.nspname NOT IN ('pg_catalog', 'information_schema')
		  AND n.nspname NOT LIKE 'pg_toast%'
		ORDER BY n.nspname, c.relname`)
	if err != nil {
		return domain.DatabaseMetadata{}, dberr.Wrap(err, "list tables")
	}
	defer tableRows.Close()

	var tables []domain.TableSummary
	for tableRows.Next() {
		var t domain.TableSummary
		if err := tableRows.Scan(&t.Schema, &t.Name, &t.RowCountEstimate, &t.HasRLS); err != nil {
			return domain.DatabaseMetadata{}, dberr.Wrap(err, "scan table summary")
		}
		tables = append(tables, t)
	}
	if err := tableRows.Err(); err != nil {
		return domain.DatabaseMetadata{}, dberr.Wrap(err, "iterate table summaries")
	}

	return domain.DatabaseMetadata{
		DatabaseName: databaseName,
		Schemas:      schemas,
		Tables:       tables,
		FetchedAt:    time.Now(),
	}, nil
}

// FetchTableDetail loads the full descriptor set for schema.table: columns,
// primary key, foreign keys, indexes, RLS policies, triggers, and a
// row-count estimate.
func (d *Driver) FetchTableDetail(ctx context.Context, dsn, schema, table string) (domain.Table, error) {
	pool, err := d.pools.Get(ctx, dsn)
	if err != nil {
		return domain.Table{}, err
	}

	t := domain.Table{Schema: schema, Name: table}

	columns, err := fetchColumns(ctx, pool, schema, table)
	if err != nil {
		return domain.Table{}, err
	}
	t.Columns = columns

	pk, err := fetchPrimaryKey(ctx, pool, schema, table)
	if err != nil {
		return domain.Table{}, err
	}
	t.PrimaryKey = pk

	fks, err := fetchForeignKeys(ctx, pool, schema, table)
	if err != nil {
		return domain.Table{}, err
	}
	t.ForeignKeys = fks

	indexes, err := fetchIndexes(ctx, pool, schema, table)
	if err != nil {
		return domain.Table{}, err
	}
	t.Indexes = indexes

	rls, err := fetchRLS(ctx, pool, schema, table)
	if err != nil {
		return domain.Table{}, err
	}
	t.RLS = rls

	triggers, err := fetchTriggers(ctx, pool, schema, table)
	if err != nil {
		return domain.Table{}, err
	}
	t.Triggers = triggers

	if err := pool.QueryRow(ctx, `
		SELECT (SELECT NULLIF(c.reltuples, -1)::bigint
		        FROM pg_class c
		        JOIN pg_namespace n ON n.oid = c.relnamespace
		        WHERE n.nspname = $1 AND c.relname = $2)`, schema, table).Scan(&t.RowCountEstimate); err != nil {
		return domain.Table{}, dberr.Wrap(err, "fetch row-count estimate")
	}

	return t, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func fetchColumns(ctx context.Context, q querier, schema, table string) ([]domain.Column, error) {
	rows, err := q.Query(ctx, `
		SELECT
			c.column_name,
			c.ordinal_position,
			c.data_type,
			(c.is_nullable = 'YES') AS nullable,
			c.column_default,
			EXISTS (
				SELECT 1 FROM information_schema.key_column_usage kcu
				JOIN information_schema.table_constraints tc
				  ON tc.constraint_name = kcu.constraint_name AND tc.constraint_type = 'PRIMARY KEY'
				WHERE kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name
				  AND kcu.column_name = c.column_name
			) AS is_primary_key,
			EXISTS (
				SELECT 1 FROM information_schema.key_column_usage kcu
				JOIN information_schema.table_constraints tc
				  ON tc.constraint_name = kcu.constraint_name AND tc.constraint_type = 'UNIQUE'
				WHERE kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name
				  AND kcu.column_name = c.column_name
			) AS is_unique,
			pg_catalog.col_description(
				(quote_ident(c.table_schema) || '.' || quote_ident(c.table_name))::regclass::oid,
				c.ordinal_position
			) AS comment
		FROM information_schema.columns c
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position`, schema, table)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch columns")
	}
	defer rows.Close()

	var columns []domain.Column
	for rows.Next() {
		var c domain.Column
		if err := rows.Scan(&c.Name, &c.OrdinalPosition, &c.DataType, &c.Nullable,
			&c.Default, &c.IsPrimaryKey, &c.IsUnique, &c.Comment); err != nil {
			return nil, dberr.Wrap(err, "scan column")
		}
		columns = append(columns, c)
	}
	return columns, dberr.Wrap(rows.Err(), "iterate columns")
}

func fetchPrimaryKey(ctx context.Context, q querier, schema, table string) ([]string, error) {
	rows, err := q.Query(ctx, `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema = $1 AND tc.table_name = $2
		ORDER BY kcu.ordinal_position`, schema, table)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch primary key")
	}
	defer rows.Close()

	cols, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return cols, dberr.Wrap(err, "collect primary key columns")
}

func fetchForeignKeys(ctx context.Context, q querier, schema, table string) ([]domain.ForeignKey, error) {
	rows, err := q.Query(ctx, `
		SELECT
			tc.constraint_name,
			array_agg(kcu.column_name ORDER BY kcu.ordinal_position) AS columns,
			ccu.table_schema AS referenced_schema,
			ccu.table_name AS referenced_table,
			array_agg(ccu.column_name ORDER BY kcu.ordinal_position) AS referenced_columns,
			rc.delete_rule,
			rc.update_rule
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
		JOIN information_schema.constraint_column_usage ccu
		  ON ccu.constraint_name = tc.constraint_name
		JOIN information_schema.referential_constraints rc
		  ON rc.constraint_name = tc.constraint_name
		WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = $1 AND tc.table_name = $2
		GROUP BY tc.constraint_name, ccu.table_schema, ccu.table_name, rc.delete_rule, rc.update_rule`,
		schema, table)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch foreign keys")
	}
	defer rows.Close()

	var fks []domain.ForeignKey
	for rows.Next() {
		var fk domain.ForeignKey
		if err := rows.Scan(&fk.ConstraintName, &fk.Columns, &fk.ReferencedSchema,
			&fk.ReferencedTable, &fk.ReferencedColumns, &fk.OnDelete, &fk.OnUpdate); err != nil {
			return nil, dberr.Wrap(err, "scan foreign key")
		}
		fks = append(fks, fk)
	}
	return fks, dberr.Wrap(rows.Err(), "iterate foreign keys")
}

func fetchIndexes(ctx context.Context, q querier, schema, table string) ([]domain.Index, error) {
	rows, err := q.Query(ctx, `
		SELECT
			i.relname AS name,
			array_agg(a.attname ORDER BY array_position(ix.indkey, a.attnum)) AS columns,
			ix.indisunique,
			ix.indisprimary,
			am.amname AS method
		FROM pg_index ix
		JOIN pg_class t ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		JOIN pg_am am ON am.oid = i.relam
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
		WHERE n.nspname = $1 AND t.relname = $2
		GROUP BY i.relname, ix.indisunique, ix.indisprimary, am.amname`, schema, table)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch indexes")
	}
	defer rows.Close()

	var indexes []domain.Index
	for rows.Next() {
		var idx domain.Index
		if err := rows.Scan(&idx.Name, &idx.Columns, &idx.IsUnique, &idx.IsPrimary, &idx.Method); err != nil {
			return nil, dberr.Wrap(err, "scan index")
		}
		indexes = append(indexes, idx)
	}
	return indexes, dberr.Wrap(rows.Err(), "iterate indexes")
}

// fetchRLS reads row-level-security configuration from pg_class and the
// pg_policies view (domain.Policy is modeled directly on pg_policies, see
// internal/domain/metadata.go).
func fetchRLS(ctx context.Context, q querier, schema, table string) (*domain.RlsInfo, error) {
	var enabled, forced bool
	if err := q.QueryRow(ctx, `
		SELECT c.relrowsecurity, c.relforcerowsecurity
		FROM pg_class c JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relname = $2`, schema, table).Scan(&enabled, &forced); err != nil {
		return nil, dberr.Wrap(err, "fetch rls flags")
	}

	rows, err := q.Query(ctx, `
		SELECT policyname, cmd, permissive = 'PERMISSIVE', roles, qual, with_check
		FROM pg_policies
		WHERE schemaname = $1 AND tablename = $2`, schema, table)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch policies")
	}
	defer rows.Close()

	var policies []domain.Policy
	for rows.Next() {
		var p domain.Policy
		if err := rows.Scan(&p.Name, &p.Command, &p.Permissive, &p.Roles, &p.Using, &p.WithCheck); err != nil {
			return nil, dberr.Wrap(err, "scan policy")
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate policies")
	}

	return &domain.RlsInfo{Enabled: enabled, Forced: forced, Policies: policies}, nil
}

func fetchTriggers(ctx context.Context, q querier, schema, table string) ([]domain.Trigger, error) {
	rows, err := q.Query(ctx, `
		SELECT trigger_name, action_timing, array_agg(event_manipulation), action_statement
		FROM information_schema.triggers
		WHERE event_object_schema = $1 AND event_object_table = $2
		GROUP BY trigger_name, action_timing, action_statement`, schema, table)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch triggers")
	}
	defer rows.Close()

	var triggers []domain.Trigger
	for rows.Next() {
		var t domain.Trigger
		if err := rows.Scan(&t.Name, &t.Timing, &t.Events, &t.Function); err != nil {
			return nil, dberr.Wrap(err, "scan trigger")
		}
		triggers = append(triggers, t)
	}
	return triggers, dberr.Wrap(rows.Err(), "iterate triggers")
}
