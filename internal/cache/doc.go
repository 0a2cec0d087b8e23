// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
Package cache persists the latest feed and gates access to the pipeline.

Store:

A Store holds exactly one CacheEntry, replaced wholesale on every successful
refresh. Implementations:

  - MemoryStore: process memory
  - BadgerStore: JSON value under key "events:latest"
  - DuckDBStore: row "events" of table feed_cache
  - PostgresStore: row "events" of table cache (Supabase layout)

Open selects one from configuration; the "fallback" backend tries BadgerDB
and settles for memory when the directory cannot be opened.

Gateway:

	gw := cache.NewGateway(store, pipeline, cache.WithNotifier(publisher))
	entry, err := gw.Get(ctx, forceRefresh)

Get serves the stored entry unless forced, the store is empty, or the
optional max age has passed. Refreshes are single-flight. Store failures
match ErrStore; pipeline failures are returned unchanged.
*/
package cache
