// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles process-wide settings that are NOT tied to a single
database connection (per-connection settings live in [domain.ConnectionProfile]
and are persisted separately by internal/profiles).

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Read by cmd/pgview while wiring, and passed to the kernel via its constructor.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds process-level runtime configuration for pgview.
type Config struct {
	// LogLevel controls the slog handler's minimum level.
	LogLevel string `env:"PGVIEW_LOG_LEVEL" envDefault:"info"`

	// CacheDir is parsed from the environment but nothing reads it: the
	// cache directory is always resolved via XDG (see internal/appdir).
	CacheDir string `env:"PGVIEW_CACHE_DIR"`

	// CompletionDebounceMs is parsed from the environment but nothing reads
	// it: the reducer always schedules TriggerCompletion
	// constants.CompletionDebounceDefault after the last keystroke.
	CompletionDebounceMs int `env:"PGVIEW_COMPLETION_DEBOUNCE_MS" envDefault:"80"`

	// PrefetchConcurrency bounds in-flight PrefetchTableDetail effects (spec.md §4.2).
	PrefetchConcurrency int `env:"PGVIEW_PREFETCH_CONCURRENCY" envDefault:"4"`

	// MetadataTTLSeconds is the TTL cache lifetime for DatabaseMetadata (spec.md §4.7).
	MetadataTTLSeconds int `env:"PGVIEW_METADATA_TTL_SECONDS" envDefault:"300"`

	// MetadataCacheCleanupSeconds is parsed and exposed through
	// MetadataCacheCleanupInterval; no periodic TTL sweep is scheduled with it
	// (see effect.CacheCleanup).
	MetadataCacheCleanupSeconds int `env:"PGVIEW_METADATA_CACHE_CLEANUP_SECONDS" envDefault:"150"`

	// CompletionCacheCapacity bounds the completion engine's table-detail LRU (spec.md §4.3).
	CompletionCacheCapacity int `env:"PGVIEW_COMPLETION_CACHE_CAPACITY" envDefault:"256"`

	// MaxCompletionCandidates truncates ranked completion results (spec.md §4.3).
	MaxCompletionCandidates int `env:"PGVIEW_MAX_COMPLETION_CANDIDATES" envDefault:"50"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// CompletionDebounce returns [Config.CompletionDebounceMs] as a [time.Duration].
func (c *Config) CompletionDebounce() time.Duration {
	return time.Duration(c.CompletionDebounceMs) * time.Millisecond
}

// MetadataTTL returns [Config.MetadataTTLSeconds] as a [time.Duration].
func (c *Config) MetadataTTL() time.Duration {
	return time.Duration(c.MetadataTTLSeconds) * time.Second
}

// MetadataCacheCleanupInterval returns [Config.MetadataCacheCleanupSeconds] as a [time.Duration].
func (c *Config) MetadataCacheCleanupInterval() time.Duration {
	return time.Duration(c.MetadataCacheCleanupSeconds) * time.Second
}
