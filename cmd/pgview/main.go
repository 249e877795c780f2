// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Pgview is the entry point for the pgview terminal database browser.

Usage:

	pgview [flags]

The flags/environment variables are:

	PGVIEW_LOG_LEVEL                  slog level (default: info)
	PGVIEW_CACHE_DIR                  parsed but not read; the XDG cache directory is always used
	PGVIEW_COMPLETION_DEBOUNCE_MS     parsed but not read; the debounce delay is a fixed 80 ms
	PGVIEW_PREFETCH_CONCURRENCY       bounded ER prefetch workers (default: 4)
	PGVIEW_METADATA_TTL_SECONDS       metadata cache TTL (default: 300)

Startup Sequence:

 1. Logger: initialize structured JSON logging (slog).
 2. Config: load and validate environment variables.
 3. Connection store: open the TOML-backed profile store; a version
    mismatch on disk is fatal (spec.md §6/§7).
 4. Ports: wire the concrete adapters (pgdriver, profiles, erexport,
    sysclip, appdir, subconsole) behind their internal/ports interfaces.
 5. Kernel: assemble the effect runner and the bubbletea dispatch loop.
 6. Program: run the terminal program until the user quits or it errors.

No business logic lives here. This file is strictly for orchestration and
wiring.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taibuivan/pgview/internal/appdir"
	"github.com/taibuivan/pgview/internal/cache"
	"github.com/taibuivan/pgview/internal/completion"
	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/effectrunner"
	"github.com/taibuivan/pgview/internal/erexport"
	"github.com/taibuivan/pgview/internal/kernel"
	"github.com/taibuivan/pgview/internal/pgdriver"
	"github.com/taibuivan/pgview/internal/platform/apperr"
	"github.com/taibuivan/pgview/internal/platform/config"
	"github.com/taibuivan/pgview/internal/platform/constants"
	"github.com/taibuivan/pgview/internal/profiles"
	"github.com/taibuivan/pgview/internal/sessioncache"
	"github.com/taibuivan/pgview/internal/state"
	"github.com/taibuivan/pgview/internal/subconsole"
	"github.com/taibuivan/pgview/internal/sysclip"
)

func main() {
	showHelp := flag.Bool("help", false, "print usage and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showHelp {
		flag.Usage()
		return
	}
	if *showVersion {
		fmt.Println(constants.AppName, constants.AppVersion)
		return
	}

	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	log = log.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("pgview_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	// # 3. Connection store
	profileStore, err := openProfileStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open connection store: %w", err)
	}

	// # 4. Ports
	pools := pgdriver.NewPools(log)
	defer pools.CloseAll()
	driver := pgdriver.NewDriver(pools)

	metadataCache := cache.NewTTL[string, domain.DatabaseMetadata](256, cfg.MetadataTTL())
	completionEngine, err := completion.NewEngine(cfg.CompletionCacheCapacity, cfg.MaxCompletionCandidates)
	if err != nil {
		return fmt.Errorf("initialize completion engine: %w", err)
	}

	session := &programSession{}
	launcher := subconsole.NewLauncher(session)

	runner := effectrunner.New(
		driver,
		driver,
		erexport.NewExporter("dot"),
		sysclip.NewWriter(),
		appdir.NewWriter(),
		profileStore,
		launcher,
		completionEngine,
		metadataCache,
		log,
		constants.AppName,
	)

	// # 5. Kernel
	initial := state.New(constants.AppName)
	connCache := sessioncache.NewStore()
	model := kernel.New(initial, connCache, runner, completionEngine, profileStore, cfg)

	// # 6. Program
	program := tea.NewProgram(model, tea.WithAltScreen())
	session.program = program

	log.Info("pgview_running")
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}

	log.Info("pgview_exited")
	return nil
}

// openProfileStore opens the TOML-backed connection store and resolves a
// version mismatch into a startup-fatal error rather than a silent reset
// (spec.md §6: "Mismatched version -> VersionMismatch{found, expected}").
func openProfileStore(cfg *config.Config, log *slog.Logger) (*profiles.Store, error) {
	store := profiles.NewStore(filepath.Join(xdg.ConfigHome, constants.AppName, "connections.toml"))
	if _, err := store.LoadAll(context.Background()); err != nil {
		var storeErr *apperr.ConnectionStoreError
		if errors.As(err, &storeErr) && storeErr.Kind == apperr.ConnectionStoreVersionMismatch {
			return nil, storeErr
		}
		log.Warn("connection_store_probe_failed", slog.Any("error", err))
	}
	return store, nil
}

// programSession adapts bubbletea's own terminal release/restore to
// ports.TuiSession (spec.md §5's RAII suspend/resume guard), so
// internal/subconsole never needs to know it is talking to bubbletea
// specifically. program is set after tea.NewProgram constructs it, since
// the session has to exist before the program does (the runner needs a
// launcher before the kernel.Model it drives can be built).
type programSession struct {
	program *tea.Program
}

func (p *programSession) Suspend() error { return p.program.ReleaseTerminal() }
func (p *programSession) Resume() error  { return p.program.RestoreTerminal() }
