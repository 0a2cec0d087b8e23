// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package cache

import (
	"context"
	"sync"

	"github.com/tomtom215/metalfeed/internal/models"
)

// MemoryStore keeps the entry in process memory. It is lost on restart.
//
// Thread Safety: Uses sync.RWMutex; entries are copied in and out so callers
// never share the stored payload slice.
type MemoryStore struct {
	mu    sync.RWMutex
	entry models.CacheEntry
	set   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get implements Store.
func (s *MemoryStore) Get(context.Context) (models.CacheEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return models.CacheEntry{}, false, nil
	}
	return copyEntry(s.entry), true, nil
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, entry models.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry = copyEntry(entry)
	s.set = true
	return nil
}

// Ping implements Store.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Backend implements Store.
func (s *MemoryStore) Backend() string {
	return "memory"
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

func copyEntry(entry models.CacheEntry) models.CacheEntry {
	payload := make([]models.Event, len(entry.Payload))
	copy(payload, entry.Payload)
	return models.CacheEntry{FetchedAt: entry.FetchedAt, Payload: payload}
}
