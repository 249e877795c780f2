// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package effectrunner_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pgview/internal/action"
	"github.com/taibuivan/pgview/internal/cache"
	"github.com/taibuivan/pgview/internal/completion"
	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/effect"
	"github.com/taibuivan/pgview/internal/effectrunner"
	"github.com/taibuivan/pgview/internal/ports"
	"github.com/taibuivan/pgview/internal/subconsole"
)

type fakeMetadata struct {
	meta       domain.DatabaseMetadata
	metaErr    error
	table      domain.Table
	tableErr   error
	fetchCalls int
}

func (f *fakeMetadata) FetchMetadata(ctx context.Context, dsn string) (domain.DatabaseMetadata, error) {
	f.fetchCalls++
	return f.meta, f.metaErr
}

func (f *fakeMetadata) FetchTableDetail(ctx context.Context, dsn, schema, table string) (domain.Table, error) {
	return f.table, f.tableErr
}

type fakeQueries struct {
	previewResult domain.QueryResult
	previewErr    error
	writeResult   domain.WriteExecutionResult
	writeErr      error
}

func (f *fakeQueries) ExecutePreview(ctx context.Context, dsn, schema, table string, limit, offset int) (domain.QueryResult, error) {
	return f.previewResult, f.previewErr
}

func (f *fakeQueries) ExecuteAdhoc(ctx context.Context, dsn, query string) (domain.QueryResult, error) {
	return f.previewResult, f.previewErr
}

func (f *fakeQueries) ExecuteWrite(ctx context.Context, dsn, query string) (domain.WriteExecutionResult, error) {
	return f.writeResult, f.writeErr
}

type fakeDiagrams struct {
	path string
	err  error
	got  []ports.ErTableInfo
}

func (f *fakeDiagrams) GenerateAndExport(ctx context.Context, tables []ports.ErTableInfo, filename, cacheDir string) (string, error) {
	f.got = tables
	return f.path, f.err
}

type fakeClipboard struct{ err error }

func (f *fakeClipboard) Write(content string) error { return f.err }

type fakeConfigWriter struct {
	cacheDir string
	dirErr   error
}

func (f *fakeConfigWriter) GetCacheDir(projectName string) (string, error) { return f.cacheDir, f.dirErr }
func (f *fakeConfigWriter) GeneratePgcliRC(cacheDir string) (string, error) {
	return cacheDir + "/.pgclirc", nil
}

type fakeSession struct{}

func (fakeSession) Suspend() error { return nil }
func (fakeSession) Resume() error  { return nil }

type fakeConnStore struct {
	profiles []domain.ConnectionProfile
	err      error
}

func (f *fakeConnStore) LoadAll(ctx context.Context) ([]domain.ConnectionProfile, error) {
	return f.profiles, f.err
}
func (f *fakeConnStore) FindByID(ctx context.Context, id domain.ConnectionId) (domain.ConnectionProfile, error) {
	return domain.ConnectionProfile{}, nil
}
func (f *fakeConnStore) Save(ctx context.Context, profile domain.ConnectionProfile) error { return nil }
func (f *fakeConnStore) Delete(ctx context.Context, id domain.ConnectionId) error         { return nil }

func newRunner(t *testing.T, meta *fakeMetadata, queries *fakeQueries, diagrams *fakeDiagrams, clip *fakeClipboard, cfg *fakeConfigWriter) *effectrunner.Runner {
	t.Helper()
	engine, err := completion.NewEngine(16, 50)
	require.NoError(t, err)
	metaCache := cache.NewTTL[string, domain.DatabaseMetadata](8, time.Minute)
	launcher := subconsole.NewLauncher(fakeSession{})
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return effectrunner.New(meta, queries, diagrams, clip, cfg, &fakeConnStore{}, launcher, engine, metaCache, logger, "testproj")
}

func TestLoadConnectionProfiles_Success(t *testing.T) {
	profile, err := domain.NewConnectionProfile("local", "localhost", 5432, "appdb", "postgres", "secret", domain.SslDisable)
	require.NoError(t, err)

	engine, err := completion.NewEngine(16, 50)
	require.NoError(t, err)
	metaCache := cache.NewTTL[string, domain.DatabaseMetadata](8, time.Minute)
	launcher := subconsole.NewLauncher(fakeSession{})
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	runner := effectrunner.New(&fakeMetadata{}, &fakeQueries{}, &fakeDiagrams{}, &fakeClipboard{}, &fakeConfigWriter{},
		&fakeConnStore{profiles: []domain.ConnectionProfile{profile}}, launcher, engine, metaCache, logger, "testproj")

	actions := runner.Execute(context.Background(), effect.LoadConnectionProfiles{})
	require.Len(t, actions, 1)
	loaded, ok := actions[0].(action.ProfilesLoaded)
	require.True(t, ok)
	assert.Equal(t, []domain.ConnectionProfile{profile}, loaded.Profiles)
}

func TestLoadConnectionProfiles_StoreError(t *testing.T) {
	meta := &fakeMetadata{}
	engine, err := completion.NewEngine(16, 50)
	require.NoError(t, err)
	metaCache := cache.NewTTL[string, domain.DatabaseMetadata](8, time.Minute)
	launcher := subconsole.NewLauncher(fakeSession{})
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	runner := effectrunner.New(meta, &fakeQueries{}, &fakeDiagrams{}, &fakeClipboard{}, &fakeConfigWriter{},
		&fakeConnStore{err: errors.New("disk read failed")}, launcher, engine, metaCache, logger, "testproj")

	actions := runner.Execute(context.Background(), effect.LoadConnectionProfiles{})
	require.Len(t, actions, 1)
	_, ok := actions[0].(action.ProfilesLoadFailed)
	assert.True(t, ok)
}

func TestFetchMetadata_CachesOnSuccess(t *testing.T) {
	meta := &fakeMetadata{meta: domain.DatabaseMetadata{DatabaseName: "appdb"}}
	runner := newRunner(t, meta, &fakeQueries{}, &fakeDiagrams{}, &fakeClipboard{}, &fakeConfigWriter{})

	actions := runner.Execute(context.Background(), effect.FetchMetadata{DSN: "dsn1", Generation: 1})
	require.Len(t, actions, 1)
	loaded, ok := actions[0].(action.MetadataLoaded)
	require.True(t, ok)
	assert.Equal(t, "appdb", loaded.Metadata.DatabaseName)
	assert.Equal(t, 1, meta.fetchCalls)

	actions = runner.Execute(context.Background(), effect.FetchMetadata{DSN: "dsn1", Generation: 2})
	require.Len(t, actions, 1)
	_, ok = actions[0].(action.MetadataLoaded)
	require.True(t, ok)
	assert.Equal(t, 1, meta.fetchCalls, "second fetch for the same DSN should hit the TTL cache")
}

func TestFetchMetadata_ReturnsFailedAction(t *testing.T) {
	meta := &fakeMetadata{metaErr: errors.New("connection refused")}
	runner := newRunner(t, meta, &fakeQueries{}, &fakeDiagrams{}, &fakeClipboard{}, &fakeConfigWriter{})

	actions := runner.Execute(context.Background(), effect.FetchMetadata{DSN: "dsn1", Generation: 1})
	require.Len(t, actions, 1)
	failed, ok := actions[0].(action.MetadataFailed)
	require.True(t, ok)
	assert.EqualError(t, failed.Err, "connection refused")
}

func TestPrefetchTableDetail_SkipsAlreadyCached(t *testing.T) {
	meta := &fakeMetadata{table: domain.Table{Schema: "public", Name: "users"}}
	runner := newRunner(t, meta, &fakeQueries{}, &fakeDiagrams{}, &fakeClipboard{}, &fakeConfigWriter{})

	first := runner.Execute(context.Background(), effect.PrefetchTableDetail{Schema: "public", Table: "users"})
	require.Len(t, first, 1)
	_, ok := first[0].(action.TableDetailCached)
	require.True(t, ok)

	second := runner.Execute(context.Background(), effect.PrefetchTableDetail{Schema: "public", Table: "users"})
	require.Len(t, second, 1)
	_, ok = second[0].(action.TableDetailAlreadyCached)
	require.True(t, ok)
}

func TestExecuteWrite_PropagatesFailure(t *testing.T) {
	queries := &fakeQueries{writeErr: errors.New("permission denied")}
	runner := newRunner(t, &fakeMetadata{}, queries, &fakeDiagrams{}, &fakeClipboard{}, &fakeConfigWriter{})

	actions := runner.Execute(context.Background(), effect.ExecuteWrite{DSN: "dsn1", SQL: "UPDATE t SET x = 1"})
	require.Len(t, actions, 1)
	failed, ok := actions[0].(action.WriteFailed)
	require.True(t, ok)
	assert.EqualError(t, failed.Err, "permission denied")
}

func TestGenerateErDiagram_UsesCachedTables(t *testing.T) {
	meta := &fakeMetadata{}
	diagrams := &fakeDiagrams{path: "/cache/testproj/er-diagram.png"}
	runner := newRunner(t, meta, &fakeQueries{}, diagrams, &fakeClipboard{}, &fakeConfigWriter{cacheDir: "/cache/testproj"})

	meta.table = domain.Table{Schema: "public", Name: "orders"}
	runner.Execute(context.Background(), effect.PrefetchTableDetail{Schema: "public", Table: "orders"})

	target := "public.orders"
	actions := runner.Execute(context.Background(), effect.GenerateErDiagramFromCache{
		TotalTables: 1, ProjectName: "testproj", TargetTable: &target,
	})
	require.Len(t, actions, 1)
	opened, ok := actions[0].(action.ErDiagramOpened)
	require.True(t, ok)
	assert.Equal(t, "/cache/testproj/er-diagram.png", opened.Path)
	require.Len(t, diagrams.got, 1)
	assert.Equal(t, "orders", diagrams.got[0].Name)
}

func TestWriteErFailureLog_ResolvesCacheDirWhenEmpty(t *testing.T) {
	cfg := &fakeConfigWriter{cacheDir: t.TempDir()}
	runner := newRunner(t, &fakeMetadata{}, &fakeQueries{}, &fakeDiagrams{}, &fakeClipboard{}, cfg)

	actions := runner.Execute(context.Background(), effect.WriteErFailureLog{
		FailedTables: map[string]string{"public.orders": "timeout"},
	})
	assert.Empty(t, actions, "WriteErFailureLog never feeds an action back to the reducer")
}

func TestCacheInvalidate_ForcesRefetch(t *testing.T) {
	meta := &fakeMetadata{meta: domain.DatabaseMetadata{DatabaseName: "appdb"}}
	runner := newRunner(t, meta, &fakeQueries{}, &fakeDiagrams{}, &fakeClipboard{}, &fakeConfigWriter{})

	runner.Execute(context.Background(), effect.FetchMetadata{DSN: "dsn1", Generation: 1})
	runner.Execute(context.Background(), effect.CacheInvalidate{DSN: "dsn1"})
	runner.Execute(context.Background(), effect.FetchMetadata{DSN: "dsn1", Generation: 2})

	assert.Equal(t, 2, meta.fetchCalls, "invalidation should force a second real fetch")
}

func TestCacheCleanup_IsNoOp(t *testing.T) {
	runner := newRunner(t, &fakeMetadata{}, &fakeQueries{}, &fakeDiagrams{}, &fakeClipboard{}, &fakeConfigWriter{})
	assert.Nil(t, runner.Execute(context.Background(), effect.CacheCleanup{}))
}
