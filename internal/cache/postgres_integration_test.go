// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/metalfeed/internal/testinfra"
)

func TestPostgresStore_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pg := testinfra.StartPostgres(ctx, t)

	store, err := OpenPostgresStore(ctx, pg.DSN)
	if err != nil {
		t.Fatalf("OpenPostgresStore() error = %v", err)
	}
	testStoreContract(t, store)
	if err := store.Put(ctx, sampleEntry()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	store.Close()

	// Schema creation is idempotent and the row survives a new pool.
	reopened, err := OpenPostgresStore(ctx, pg.DSN)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	entry, found, err := reopened.Get(ctx)
	if err != nil || !found {
		t.Fatalf("Get() after reopen = found %v, err %v", found, err)
	}
	if entry.Count() != len(sampleEntry().Payload) {
		t.Error("reopened store lost the payload")
	}
}
