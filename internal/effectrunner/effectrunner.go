// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package effectrunner executes the leaf, I/O-performing [effect.Effect]
variants the reducer requests (spec.md §4.2) against the concrete port
adapters. It deliberately does not handle every Effect variant: Render,
ProcessPrefetchQueue, ScheduleCompletionDebounce, TriggerCompletion,
Sequence, and DispatchActions all need synchronous, borrow-for-an-instant
access to AppState or the completion engine that spec.md §5's concurrency
model says must never span a suspension point — internal/kernel handles
those directly instead. Execute is safe to call concurrently for distinct
effects; the caller (the kernel) owns sequencing, exclusivity, and bounded
prefetch concurrency.

Architecture mirrors the teacher's thin-service-method style
(internal/core/comic/service_comic.go): one method per concern, each
translating a port error into the action the reducer expects, never
a panic.
*/
package effectrunner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/cache"
	"github.com/taibuivan/pgview/internal/completion"
	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/ports"
	"github.com/taibuivan/pgview/internal/subconsole"
)

// Runner holds every port dependency the leaf effects need.
type Runner struct {
	metadata      ports.MetadataProvider
	queries       ports.QueryExecutor
	diagrams      ports.ErDiagramExporter
	clipboard     ports.ClipboardWriter
	configWriter  ports.ConfigWriter
	connStore     ports.ConnectionStore
	launcher      *subconsole.Launcher
	completion    *completion.Engine
	metadataCache *cache.TTL[string, domain.DatabaseMetadata]
	logger        *slog.Logger
	projectName   string
}

// New constructs a Runner wired to every concrete adapter.
func New(
	metadata ports.MetadataProvider,
	queries ports.QueryExecutor,
	diagrams ports.ErDiagramExporter,
	clipboard ports.ClipboardWriter,
	configWriter ports.ConfigWriter,
	connStore ports.ConnectionStore,
	launcher *subconsole.Launcher,
	completionEngine *completion.Engine,
	metadataCache *cache.TTL[string, domain.DatabaseMetadata],
	logger *slog.Logger,
	projectName string,
) *Runner {
	return &Runner{
		metadata:      metadata,
		queries:       queries,
		diagrams:      diagrams,
		clipboard:     clipboard,
		configWriter:  configWriter,
		connStore:     connStore,
		launcher:      launcher,
		completion:    completionEngine,
		metadataCache: metadataCache,
		logger:        logger,
		projectName:   projectName,
	}
}

// Execute runs one leaf effect to completion and returns the action(s) the
// reducer should see next. Unrecognized or kernel-owned variants return nil.
func (r *Runner) Execute(ctx context.Context, eff effect.Effect) []action.Action {
	switch e := eff.(type) {

	case effect.CacheInvalidate:
		r.metadataCache.Remove(e.DSN)
		return nil

	case effect.CacheCleanup:
		// No-op: gcache's SimpleCache expires entries lazily on access, so
		// there is nothing to sweep (see DESIGN.md).
		return nil

	case effect.FetchMetadata:
		return r.fetchMetadata(ctx, e)

	case effect.FetchTableDetail:
		return r.fetchTableDetail(ctx, e)

	case effect.PrefetchTableDetail:
		return r.prefetchTableDetail(ctx, e)

	case effect.ExecutePreview:
		return r.executePreview(ctx, e)

	case effect.ExecuteAdhoc:
		return r.executeAdhoc(ctx, e)

	case effect.ExecuteWrite:
		return r.executeWrite(ctx, e)

	case effect.OpenConsole:
		return r.openConsole(ctx, e)

	case effect.GenerateErDiagramFromCache:
		return r.generateErDiagram(ctx, e)

	case effect.WriteErFailureLog:
		return r.writeErFailureLog(e)

	case effect.LoadConnectionProfiles:
		return r.loadConnectionProfiles(ctx)
	}
	return nil
}

func (r *Runner) loadConnectionProfiles(ctx context.Context) []action.Action {
	profiles, err := r.connStore.LoadAll(ctx)
	if err != nil {
		r.logger.Warn("load connection profiles failed", "err", err)
		return []action.Action{action.ProfilesLoadFailed{Err: err}}
	}
	return []action.Action{action.ProfilesLoaded{Profiles: profiles}}
}

func (r *Runner) fetchMetadata(ctx context.Context, e effect.FetchMetadata) []action.Action {
	if cached, ok := r.metadataCache.Get(e.DSN); ok {
		return []action.Action{action.MetadataLoaded{Metadata: cached, Generation: e.Generation}}
	}

	meta, err := r.metadata.FetchMetadata(ctx, e.DSN)
	if err != nil {
		r.logger.Warn("fetch metadata failed", "dsn", maskDSN(e.DSN), "err", err)
		return []action.Action{action.MetadataFailed{Err: err, Generation: e.Generation}}
	}

	r.metadataCache.Set(e.DSN, meta)
	return []action.Action{action.MetadataLoaded{Metadata: meta, Generation: e.Generation}}
}

func (r *Runner) fetchTableDetail(ctx context.Context, e effect.FetchTableDetail) []action.Action {
	table, err := r.metadata.FetchTableDetail(ctx, e.DSN, e.Schema, e.Table)
	if err != nil {
		return []action.Action{action.TableDetailFailed{Schema: e.Schema, Table: e.Table, Err: err, Generation: e.Generation}}
	}
	r.completion.CacheTable(table)
	return []action.Action{action.TableDetailLoaded{Table: table, Generation: e.Generation}}
}

func (r *Runner) prefetchTableDetail(ctx context.Context, e effect.PrefetchTableDetail) []action.Action {
	qualified := domain.Table{Schema: e.Schema, Name: e.Table}.QualifiedName()
	if _, ok := r.completion.CachedTable(qualified); ok {
		return []action.Action{action.TableDetailAlreadyCached{QualifiedName: qualified}}
	}

	table, err := r.metadata.FetchTableDetail(ctx, e.DSN, e.Schema, e.Table)
	if err != nil {
		return []action.Action{action.TableDetailCacheFailed{QualifiedName: qualified, Err: err}}
	}
	r.completion.CacheTable(table)
	return []action.Action{action.TableDetailCached{QualifiedName: qualified}}
}

func (r *Runner) executePreview(ctx context.Context, e effect.ExecutePreview) []action.Action {
	result, err := r.queries.ExecutePreview(ctx, e.DSN, e.Schema, e.Table, e.Limit, e.Offset)
	if err != nil {
		return []action.Action{action.QueryFailed{Err: err, Generation: e.Generation}}
	}
	return []action.Action{action.QueryCompleted{Result: &result, Generation: e.Generation}}
}

func (r *Runner) executeAdhoc(ctx context.Context, e effect.ExecuteAdhoc) []action.Action {
	result, err := r.queries.ExecuteAdhoc(ctx, e.DSN, e.SQL)
	if err != nil {
		return []action.Action{action.QueryFailed{Err: err, Generation: e.Generation}}
	}
	return []action.Action{action.QueryCompleted{Result: &result, Generation: e.Generation}}
}

func (r *Runner) executeWrite(ctx context.Context, e effect.ExecuteWrite) []action.Action {
	result, err := r.queries.ExecuteWrite(ctx, e.DSN, e.SQL)
	if err != nil {
		return []action.Action{action.WriteFailed{Err: err}}
	}
	return []action.Action{action.WriteCompleted{Result: result}}
}

func (r *Runner) openConsole(ctx context.Context, e effect.OpenConsole) []action.Action {
	cacheDir, err := r.configWriter.GetCacheDir(e.ProjectName)
	if err != nil {
		r.logger.Warn("resolve cache dir for pgclirc failed", "err", err)
		cacheDir = ""
	}

	var pgclircPath string
	if cacheDir != "" {
		path, err := r.configWriter.GeneratePgcliRC(cacheDir)
		if err != nil {
			r.logger.Warn("generate pgclirc failed", "err", err)
		} else {
			pgclircPath = path
		}
	}

	if err := r.launcher.Launch(ctx, e.DSN, pgclircPath); err != nil {
		r.logger.Warn("pgcli console failed", "err", err)
	}
	return nil
}

func (r *Runner) generateErDiagram(ctx context.Context, e effect.GenerateErDiagramFromCache) []action.Action {
	cached := r.completion.CachedTables()
	tables := make([]ports.ErTableInfo, 0, len(cached))
	for _, t := range cached {
		tables = append(tables, ports.ErTableInfo{
			Schema: t.Schema, Name: t.Name, Columns: t.Columns,
			PrimaryKey: t.PrimaryKey, ForeignKeys: t.ForeignKeys,
		})
	}

	filename := "er-diagram.png"
	if e.TargetTable != nil {
		filename = strings.ReplaceAll(*e.TargetTable, ".", "_") + "-er-diagram.png"
	}

	cacheDir, err := r.configWriter.GetCacheDir(e.ProjectName)
	if err != nil {
		return []action.Action{action.ErDiagramFailed{Err: err}}
	}

	path, err := r.diagrams.GenerateAndExport(ctx, tables, filename, cacheDir)
	if err != nil {
		return []action.Action{action.ErDiagramFailed{Err: err}}
	}
	return []action.Action{action.ErDiagramOpened{Path: path}}
}

func (r *Runner) writeErFailureLog(e effect.WriteErFailureLog) []action.Action {
	cacheDir := e.CacheDir
	if cacheDir == "" {
		dir, err := r.configWriter.GetCacheDir(r.projectName)
		if err != nil {
			r.logger.Warn("resolve cache dir for ER failure log failed", "err", err)
			return nil
		}
		cacheDir = dir
	}

	var b strings.Builder
	for name, message := range e.FailedTables {
		fmt.Fprintf(&b, "%s: %s\n", name, message)
		r.logger.Warn("table detail prefetch failed", "table", name, "err", message)
	}

	path := filepath.Join(cacheDir, "er-diagram-failures.log")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		r.logger.Warn("write ER failure log failed", "path", path, "err", err)
	}
	return nil
}

// maskDSN avoids logging credentials; it assumes err already carries a safe
// message and this is only for the dsn argument itself.
func maskDSN(dsn string) string {
	if idx := strings.Index(dsn, "@"); idx != -1 {
		return "postgres://****" + dsn[idx:]
	}
	return "postgres://****"
}

// WriteClipboard copies content to the system clipboard, returning a
// classified [apperr.ClipboardError] on failure (spec.md §6 ClipboardWriter).
// Exposed as a direct method rather than an Effect variant because
// clipboard copy (e.g. "yank cell value") has no generation to race and no
// corresponding action today; callers needing it (the kernel's key
// handler) invoke it directly.
func (r *Runner) WriteClipboard(content string) error {
	return r.clipboard.Write(content)
}
