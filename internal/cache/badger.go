// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/metalfeed/internal/models"
)

// BadgerStore keeps the entry as JSON under EntryKey in a BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a BadgerDB at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for feed cache: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// OpenBadgerStoreInMemory opens a BadgerDB that never touches disk.
func OpenBadgerStoreInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger db: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get implements Store.
func (s *BadgerStore) Get(_ context.Context) (models.CacheEntry, bool, error) {
	var entry models.CacheEntry
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(EntryKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get entry: %w", err)
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return models.CacheEntry{}, false, storeError(s.Backend(), "get", err)
	}

	return entry, found, nil
}

// Put implements Store.
func (s *BadgerStore) Put(_ context.Context, entry models.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return storeError(s.Backend(), "put", fmt.Errorf("marshal entry: %w", err))
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(EntryKey), data)
	})
	if err != nil {
		return storeError(s.Backend(), "put", err)
	}
	return nil
}

// Ping implements Store.
func (s *BadgerStore) Ping(context.Context) error {
	if s.db.IsClosed() {
		return storeError(s.Backend(), "ping", errors.New("database closed"))
	}
	return nil
}

// Backend implements Store.
func (s *BadgerStore) Backend() string {
	return "badger"
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
