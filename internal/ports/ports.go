// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ports declares the abstract capabilities the effect runner drives
(spec.md §6, §9: "Ports are abstract capabilities"). Each interface has
exactly one concrete adapter elsewhere in this module: internal/pgdriver
for MetadataProvider/QueryExecutor, internal/profiles for ConnectionStore,
internal/erexport for ErDiagramExporter, internal/sysclip for
ClipboardWriter, internal/appdir for ConfigWriter. Splitting interface from
adapter this way mirrors the teacher's store.go/store_postgres.go pattern
repeated across internal/core/*.
*/
package ports

import (
	"context"

	"github.com/taibuivan/pgview/internal/domain"
)

// ConnectionStore persists [domain.ConnectionProfile] values (spec.md §6).
type ConnectionStore interface {
	LoadAll(ctx context.Context) ([]domain.ConnectionProfile, error)
	FindByID(ctx context.Context, id domain.ConnectionId) (domain.ConnectionProfile, error)
	Save(ctx context.Context, profile domain.ConnectionProfile) error
	Delete(ctx context.Context, id domain.ConnectionId) error
}

// MetadataProvider scans a database's catalog over dsn.
type MetadataProvider interface {
	FetchMetadata(ctx context.Context, dsn string) (domain.DatabaseMetadata, error)
	FetchTableDetail(ctx context.Context, dsn, schema, table string) (domain.Table, error)
}

// QueryExecutor runs SQL against dsn.
type QueryExecutor interface {
	ExecutePreview(ctx context.Context, dsn, schema, table string, limit, offset int) (domain.QueryResult, error)
	ExecuteAdhoc(ctx context.Context, dsn, query string) (domain.QueryResult, error)
	ExecuteWrite(ctx context.Context, dsn, query string) (domain.WriteExecutionResult, error)
}

// ErTableInfo is the per-table payload an [ErDiagramExporter] renders.
type ErTableInfo struct {
	Schema      string
	Name        string
	Columns     []domain.Column
	PrimaryKey  []string
	ForeignKeys []domain.ForeignKey
}

// ErDiagramExporter renders an ER diagram and returns the path written.
type ErDiagramExporter interface {
	GenerateAndExport(ctx context.Context, tables []ErTableInfo, filename, cacheDir string) (string, error)
}

// ClipboardWriter copies text to the system clipboard.
type ClipboardWriter interface {
	Write(content string) error
}

// ConfigWriter resolves cache paths and writes auxiliary config files.
type ConfigWriter interface {
	GetCacheDir(projectName string) (string, error)
	GeneratePgcliRC(cacheDir string) (string, error)
}

// RenderOutput is the result of a single draw pass (spec.md §6).
type RenderOutput struct {
	ViewportWidth  int
	ViewportHeight int
	PaneHeights    map[string]int
}

// Renderer draws application state to the terminal.
type Renderer interface {
	Draw(s any) (RenderOutput, error)
}

// TuiSession suspends and resumes terminal control around an exclusive
// sub-process effect (spec.md §4.2 OpenConsole).
type TuiSession interface {
	Suspend() error
	Resume() error
}
