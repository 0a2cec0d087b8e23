// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package cache

import (
	"context"
	"errors"

	"github.com/tomtom215/metalfeed/internal/models"
)

// ErrStore wraps every persistence failure. A failed Put fails the request
// that triggered it, even though the computed feed was valid.
var ErrStore = errors.New("feed store failure")

// Singleton identities of the one stored entry.
const (
	EntryKey = "events:latest" // key-value backends
	EntryRow = "events"        // row-store backends
)

// Store persists the single latest CacheEntry. There is no history: every
// Put replaces the previous entry wholesale.
//
// Usage:
//
//	entry, found, err := store.Get(ctx)
//	if err != nil {
//	    return err // store unreachable
//	}
//	if !found {
//	    // nothing cached yet
//	}
type Store interface {
	// Get returns the stored entry. found is false when nothing was stored.
	Get(ctx context.Context) (entry models.CacheEntry, found bool, err error)

	// Put replaces the stored entry.
	Put(ctx context.Context, entry models.CacheEntry) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Backend names the implementation for logs and metrics.
	Backend() string

	// Close releases the backend.
	Close() error
}

// storeError wraps err with ErrStore and the operation name.
func storeError(backend, op string, err error) error {
	return &StoreError{Backend: backend, Op: op, Err: err}
}

// StoreError describes a failed store operation.
type StoreError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StoreError) Error() string {
	return "feed store " + e.Backend + " " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports ErrStore as a match.
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}
