// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
Package main is the entry point of the Metalfeed server.

Metalfeed aggregates upcoming metal and rock concerts in Sweden from the
Ticketmaster Discovery API and Songkick's metro-area listings into one
deduplicated, date-ordered feed, cached until a client asks for a refresh.

# Application Architecture

	RootSupervisor ("metalfeed")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocket hub
	│   └── feed.refreshed relay (EVENTS_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Startup order:

 1. Configuration: koanf v2, defaults then config.yaml then environment
 2. Logging: zerolog, JSON or console
 3. Feed store: memory, badger, fallback, duckdb or postgres (CACHE_BACKEND)
 4. Pipeline: enabled source adapters behind circuit breakers
 5. Notifications (optional): watermill over NATS or an in-process channel
 6. HTTP server: chi router under the supervisor tree

# Configuration

	export TM_KEY=your-ticketmaster-key
	export CACHE_BACKEND=badger
	export CACHE_PATH=/var/lib/metalfeed/cache
	export HTTP_PORT=8080
	./metalfeed

With NATS notifications:

	export EVENTS_ENABLED=true
	export EVENTS_NATS_URL=nats://nats:4222
	./metalfeed

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree: the HTTP server drains for up
to 10s, WebSocket clients are closed, then the event bus and the feed store
are closed.
*/
package main
