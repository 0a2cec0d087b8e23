// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomtom215/metalfeed/internal/models"
)

// The table layout matches a Supabase "cache" table, so an existing hosted
// project can be pointed at directly.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS cache (
	id         TEXT PRIMARY KEY,
	fetched_at TIMESTAMPTZ NOT NULL,
	payload    JSONB NOT NULL
)`

// PostgresStore keeps the entry in a single-row Postgres table, row id EntryRow.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgresStore connects to dsn and creates the table if needed.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create cache table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context) (models.CacheEntry, bool, error) {
	var (
		fetchedAt time.Time
		payload   []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT fetched_at, payload FROM cache WHERE id = $1`, EntryRow,
	).Scan(&fetchedAt, &payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.CacheEntry{}, false, nil
	}
	if err != nil {
		return models.CacheEntry{}, false, storeError(s.Backend(), "get", err)
	}

	entry := models.CacheEntry{FetchedAt: fetchedAt.UTC()}
	if err := json.Unmarshal(payload, &entry.Payload); err != nil {
		return models.CacheEntry{}, false, storeError(s.Backend(), "get", fmt.Errorf("decode payload: %w", err))
	}
	return entry, true, nil
}

// Put implements Store.
func (s *PostgresStore) Put(ctx context.Context, entry models.CacheEntry) error {
	payload, err := encodePayload(entry.Payload)
	if err != nil {
		return storeError(s.Backend(), "put", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO cache (id, fetched_at, payload) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (id) DO UPDATE SET
			fetched_at = EXCLUDED.fetched_at,
			payload = EXCLUDED.payload`,
		EntryRow, entry.FetchedAt.UTC(), payload,
	)
	if err != nil {
		return storeError(s.Backend(), "put", err)
	}
	return nil
}

// Ping implements Store.
func (s *PostgresStore) Ping(ctx context.Context) error {
	var one int
	if err := s.pool.QueryRow(ctx, "select 1").Scan(&one); err != nil {
		return storeError(s.Backend(), "ping", err)
	}
	return nil
}

// Backend implements Store.
func (s *PostgresStore) Backend() string {
	return "postgres"
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
