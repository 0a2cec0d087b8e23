// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver registration
	"github.com/goccy/go-json"

	"github.com/tomtom215/metalfeed/internal/models"
)

const duckdbSchema = `
CREATE TABLE IF NOT EXISTS feed_cache (
	id         VARCHAR PRIMARY KEY,
	fetched_at TIMESTAMP NOT NULL,
	payload    VARCHAR NOT NULL
)`

// DuckDBStore keeps the entry in a single-row DuckDB table, row id EntryRow.
// fetched_at is stored as UTC.
type DuckDBStore struct {
	db *sql.DB
}

// OpenDuckDBStore opens the database file at path (":memory:" or "" for an
// in-memory database) and creates the table if needed.
func OpenDuckDBStore(ctx context.Context, path string) (*DuckDBStore, error) {
	if path == ":memory:" {
		path = ""
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	// A single connection keeps an in-memory database alive and shared.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	if _, err := db.ExecContext(ctx, duckdbSchema); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to create feed_cache table: %w", err)
	}

	return &DuckDBStore{db: db}, nil
}

// Get implements Store.
func (s *DuckDBStore) Get(ctx context.Context) (models.CacheEntry, bool, error) {
	var (
		fetchedAt time.Time
		payload   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at, payload FROM feed_cache WHERE id = ?`, EntryRow,
	).Scan(&fetchedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CacheEntry{}, false, nil
	}
	if err != nil {
		return models.CacheEntry{}, false, storeError(s.Backend(), "get", err)
	}

	entry := models.CacheEntry{FetchedAt: fetchedAt.UTC()}
	if err := json.Unmarshal([]byte(payload), &entry.Payload); err != nil {
		return models.CacheEntry{}, false, storeError(s.Backend(), "get", fmt.Errorf("decode payload: %w", err))
	}
	return entry, true, nil
}

// Put implements Store.
func (s *DuckDBStore) Put(ctx context.Context, entry models.CacheEntry) error {
	payload, err := encodePayload(entry.Payload)
	if err != nil {
		return storeError(s.Backend(), "put", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO feed_cache (id, fetched_at, payload) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			payload = excluded.payload`,
		EntryRow, entry.FetchedAt.UTC(), payload,
	)
	if err != nil {
		return storeError(s.Backend(), "put", err)
	}
	return nil
}

// Ping implements Store.
func (s *DuckDBStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storeError(s.Backend(), "ping", err)
	}
	return nil
}

// Backend implements Store.
func (s *DuckDBStore) Backend() string {
	return "duckdb"
}

// Close implements Store.
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}

// encodePayload marshals events, writing an empty feed as [] rather than null.
func encodePayload(events []models.Event) (string, error) {
	if events == nil {
		events = []models.Event{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(data), nil
}

func closeQuietly(db *sql.DB) {
	_ = db.Close() //nolint:errcheck // best effort on a failed open
}
