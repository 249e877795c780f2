// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pgdriver is the pgx/v5-backed implementation of the
MetadataProvider and QueryExecutor ports (spec.md §6). It keeps one pool
per DSN, tuned the way the teacher's internal/platform/postgres.NewPool
tunes its single pool, generalized to multiple concurrently open
connections (spec.md §2: the user may hold several ConnectionProfiles).

Architecture:

  - Pools: a DSN-keyed, mutex-guarded map of *pgxpool.Pool, built lazily.
  - Tuning: MaxConns/MinConns/MaxConnIdleTime per internal/platform/constants.
  - Safety: every pool applies a per-connection statement_timeout and every
    query runs under a caller-supplied context deadline.
*/
package pgdriver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pgview/internal/platform/constants"
	"github.com/taibuivan/pgview/internal/platform/dberr"
)

// Pools is a DSN-keyed cache of connection pools.
type Pools struct {
	mu      sync.Mutex
	byDSN   map[string]*pgxpool.Pool
	logger  *slog.Logger
}

// NewPools constructs an empty pool cache.
func NewPools(logger *slog.Logger) *Pools {
	return &Pools{byDSN: make(map[string]*pgxpool.Pool), logger: logger}
}

// Get returns the pool for dsn, constructing and validating it on first
// use (spec.md §6 MetadataProvider errors: ConnectionFailed, Timeout).
func (p *Pools) Get(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pool, ok := p.byDSN[dsn]; ok {
		return pool, nil
	}

	pool, err := newPool(ctx, dsn, p.logger)
	if err != nil {
		return nil, err
	}
	p.byDSN[dsn] = pool
	return pool, nil
}

// Invalidate closes and forgets the pool for dsn (spec.md §4.2
// CacheInvalidate accompanies a connection switch-away).
func (p *Pools) Invalidate(dsn string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pool, ok := p.byDSN[dsn]; ok {
		pool.Close()
		delete(p.byDSN, dsn)
	}
}

// CloseAll closes every pool, used at process shutdown.
func (p *Pools) CloseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for dsn, pool := range p.byDSN {
		pool.Close()
		delete(p.byDSN, dsn)
	}
}

// # Lifecycle management

// newPool creates and validates a new PostgreSQL connection pool for dsn.
func newPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {

	// Step 1: parse the DSN string.
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, dberr.WrapConnect(fmt.Errorf("pgdriver: invalid DSN: %w", err))
	}

	// Step 2: apply pool tuning parameters.
	poolConfig.MaxConns = constants.PoolMaxConns
	poolConfig.MinConns = constants.PoolMinConns
	poolConfig.MaxConnLifetime = constants.PoolMaxConnLifetime
	poolConfig.MaxConnIdleTime = constants.PoolMaxConnIdleTime
	poolConfig.HealthCheckPeriod = constants.PoolHealthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = constants.PoolConnectTimeout

	// AfterConnect caps every query issued over this connection.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		timeoutQuery := fmt.Sprintf("SET statement_timeout = '%ds'", int(constants.PoolStatementTimeout.Seconds()))
		_, err := conn.Exec(ctx, timeoutQuery)
		return err
	}

	// Step 3: establish the pool.
	connectCtx, cancel := context.WithTimeout(ctx, constants.PoolConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, dberr.WrapConnect(fmt.Errorf("pgdriver: failed to create pool: %w", err))
	}

	// Step 4: validate that we can actually reach the database.
	if err := ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	// Step 5: log pool statistics on startup.
	stats := pool.Stat()
	if logger != nil {
		logger.Info("pgdriver pool connected",
			slog.Int("max_conns", int(stats.MaxConns())),
			slog.Int("total_conns", int(stats.TotalConns())),
		)
	}

	return pool, nil
}

// ping verifies that the pool can reach the database.
func ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, constants.PoolPingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return dberr.WrapConnect(fmt.Errorf("pgdriver: ping failed: %w", err))
	}
	return nil
}
