// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values shared across the
kernel: pagination sizing, cache capacities, message timeouts, and pool
tuning. Using this package ensures magic numbers are eliminated from the
reducer and effect runner.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "pgview"
	AppVersion = "0.1.0-dev"
)

// # Pagination (spec.md §4.5)

const (
	// PreviewPageSize is the fixed row-preview page size.
	PreviewPageSize = 500

	// ResultHistoryCapacity is the ring buffer size for ad-hoc query results.
	ResultHistoryCapacity = 20
)

// # Messages & timers (spec.md §4.10)

const (
	// MessageExpiry is how long a toast-style success/error message is shown.
	MessageExpiry = 3 * time.Second

	// CopiedFlashExpiry is how long the "copied to clipboard" flash lasts.
	CopiedFlashExpiry = 3 * time.Second
)

// # Completion engine (spec.md §4.3)

const (
	// CompletionMRUCapacity bounds the recently-accepted-column boost list.
	CompletionMRUCapacity = 32

	// CompletionDebounceDefault is the debounce delay the reducer applies after
	// every SQL-modal keystroke; config.Config.CompletionDebounceMs does not
	// override it.
	CompletionDebounceDefault = 80 * time.Millisecond
)

// # Prefetch / ER preparation (spec.md §4.2, §4.4)

const (
	// DefaultPrefetchConcurrency equals config.Config.PrefetchConcurrency's
	// default; the kernel reads the config value, not this constant.
	DefaultPrefetchConcurrency = 4
)

// # Postgres connection pool tuning (internal/pgdriver)

const (
	// PoolMaxConns is the maximum number of connections in a per-DSN pool.
	PoolMaxConns = 10

	// PoolMinConns keeps a warm set of connections to avoid cold-start latency.
	PoolMinConns = 1

	// PoolMaxConnLifetime ensures connections are periodically recycled.
	PoolMaxConnLifetime = 60 * time.Minute

	// PoolMaxConnIdleTime closes connections that have been idle too long.
	PoolMaxConnIdleTime = 10 * time.Minute

	// PoolHealthCheckPeriod is the frequency of background connection health checks.
	PoolHealthCheckPeriod = 1 * time.Minute

	// PoolConnectTimeout is the maximum time allowed to establish a new connection.
	PoolConnectTimeout = 5 * time.Second

	// PoolPingTimeout is the maximum duration for a health check ping.
	PoolPingTimeout = 2 * time.Second

	// PoolStatementTimeout caps any single query issued through the pool.
	PoolStatementTimeout = 30 * time.Second
)

// # ConnectionProfile validation

const (
	// ConnectionNameMaxLen is the maximum length of a trimmed connection name.
	ConnectionNameMaxLen = 50
)

// # Connection store persistence (internal/profiles)

const (
	// ConnectionStoreVersion is the current on-disk TOML schema version.
	ConnectionStoreVersion uint32 = 1
)
