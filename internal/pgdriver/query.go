// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pgdriver

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/platform/dberr"
	"github.com/taibuivan/pgview/internal/sqlquote"
)

// ExecutePreview runs a LIMIT/OFFSET preview over schema.table (spec.md
// §4.5, §6 QueryExecutor port).
func (d *Driver) ExecutePreview(ctx context.Context, dsn, schema, table string, limit, offset int) (domain.QueryResult, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d OFFSET %d",
		sqlquote.QualifiedIdent(schema, table), limit, offset)
	return d.run(ctx, dsn, query, domain.QuerySourcePreview)
}

// ExecuteAdhoc runs a user-supplied SQL statement.
func (d *Driver) ExecuteAdhoc(ctx context.Context, dsn, query string) (domain.QueryResult, error) {
	return d.run(ctx, dsn, query, domain.QuerySourceAdhoc)
}

// ExecuteWrite runs a guardrail-approved UPDATE and returns the number of
// affected rows (spec.md §6 WriteExecutionResult).
func (d *Driver) ExecuteWrite(ctx context.Context, dsn, query string) (domain.WriteExecutionResult, error) {
	pool, err := d.pools.Get(ctx, dsn)
	if err != nil {
		return domain.WriteExecutionResult{}, err
	}

	start := time.Now()
	tag, err := pool.Exec(ctx, query)
	if err != nil {
		return domain.WriteExecutionResult{}, dberr.Wrap(err, "execute write")
	}

	return domain.WriteExecutionResult{
		AffectedRows:    tag.RowsAffected(),
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// run executes query and materializes its rows into a [domain.QueryResult];
// every value is stringified for display, matching the preview grid's
// text-cell model (spec.md §3: QueryResult.rows[][]).
func (d *Driver) run(ctx context.Context, dsn, query string, source domain.QuerySource) (domain.QueryResult, error) {
	pool, err := d.pools.Get(ctx, dsn)
	if err != nil {
		return domain.QueryResult{}, err
	}

	start := time.Now()
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return domain.QueryResult{}, dberr.Wrap(err, "execute query")
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = string(f.Name)
	}

	var rendered [][]string
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return domain.QueryResult{}, dberr.Wrap(err, "read row values")
		}
		rendered = append(rendered, stringifyRow(values))
	}
	if err := rows.Err(); err != nil {
		return domain.QueryResult{}, dberr.Wrap(err, "iterate rows")
	}

	return domain.QueryResult{
		Query:           query,
		Columns:         columns,
		Rows:            rendered,
		RowCount:        len(rendered),
		ExecutionTimeMs: time.Since(start).Milliseconds(),
		ExecutedAt:      time.Now(),
		Source:          source,
	}, nil
}

func stringifyRow(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = "NULL"
			continue
		}
		out[i] = fmt.Sprintf("%v", v)
	}
	return out
}
