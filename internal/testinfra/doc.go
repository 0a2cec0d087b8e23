// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

// Package testinfra provides container helpers for integration tests.
//
// The helpers use testcontainers-go and are only compiled with the
// integration build tag:
//
//	go test -tags integration ./internal/cache/...
//
// # Postgres Container
//
// PostgresContainer starts a disposable Postgres server for the Postgres
// feed store:
//
//	func TestPostgresStore(t *testing.T) {
//	    ctx := context.Background()
//	    pg := testinfra.StartPostgres(ctx, t)
//	    store, err := cache.OpenPostgresStore(ctx, pg.DSN)
//	    // ...
//	}
//
// # CI Considerations
//
// These tests require a container runtime. StartPostgres skips the test
// when testcontainers reports the provider unhealthy.
package testinfra
