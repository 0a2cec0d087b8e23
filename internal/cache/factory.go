// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/metalfeed/internal/config"
	"github.com/tomtom215/metalfeed/internal/logging"
	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/models"
)

// Open creates the store selected by cfg.Backend. Every store it returns
// records operation metrics.
//
// Backends:
//   - memory: process memory only
//   - badger: BadgerDB at cfg.Path, failure to open is fatal
//   - fallback: BadgerDB at cfg.Path, memory when the directory cannot be opened
//   - duckdb: DuckDB file at cfg.DuckDBPath
//   - postgres: table "cache" reached through cfg.PostgresDSN
func Open(ctx context.Context, cfg *config.CacheConfig) (Store, error) {
	store, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("backend", store.Backend()).Msg("Feed store opened")
	return Instrument(store), nil
}

func open(ctx context.Context, cfg *config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case config.CacheBackendMemory:
		return NewMemoryStore(), nil

	case config.CacheBackendBadger:
		return OpenBadgerStore(cfg.Path)

	case config.CacheBackendFallback, "":
		store, err := OpenBadgerStore(cfg.Path)
		if err != nil {
			logging.Warn().Err(err).Str("path", cfg.Path).Msg("BadgerDB unavailable, falling back to in-memory feed store")
			return NewMemoryStore(), nil
		}
		return store, nil

	case config.CacheBackendDuckDB:
		return OpenDuckDBStore(ctx, cfg.DuckDBPath)

	case config.CacheBackendPostgres:
		return OpenPostgresStore(ctx, cfg.PostgresDSN)

	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// instrumentedStore records latency and errors of the wrapped store.
type instrumentedStore struct {
	Store
}

// Instrument wraps store with Prometheus operation metrics.
func Instrument(store Store) Store {
	if _, ok := store.(*instrumentedStore); ok {
		return store
	}
	return &instrumentedStore{Store: store}
}

func (s *instrumentedStore) Get(ctx context.Context) (models.CacheEntry, bool, error) {
	start := time.Now()
	entry, found, err := s.Store.Get(ctx)
	metrics.RecordStoreOperation(s.Backend(), "get", time.Since(start), err)
	return entry, found, err
}

func (s *instrumentedStore) Put(ctx context.Context, entry models.CacheEntry) error {
	start := time.Now()
	err := s.Store.Put(ctx, entry)
	metrics.RecordStoreOperation(s.Backend(), "put", time.Since(start), err)
	return err
}
