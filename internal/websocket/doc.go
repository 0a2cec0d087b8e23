// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
Package websocket pushes feed refresh notifications to browsers.

A page holding the feed can keep a connection to /ws open and re-fetch
/events when told that a newer feed exists, instead of polling.

Key Components:

  - Hub: tracks connected clients and fans messages out to them
  - Client: one connection with a read goroutine and a write goroutine
  - Message: the {"type": ..., "data": ...} envelope

Message Types:

	feed_refreshed  server -> client  {"fetchedAt","count","sources"}
	ping            client -> server
	pong            server -> client

Example frame:

	{"type":"feed_refreshed","data":{"fetchedAt":"2026-02-01T12:00:00Z",
	 "count":42,"sources":{"Ticketmaster":30,"Songkick":12}}}

Thread Safety:

Hub methods are safe for concurrent use. Broadcasts never block: a full hub
buffer drops the message, and a client whose send buffer is full is
disconnected.

Lifecycle:

RunWithContext runs under the supervisor. When its context ends it closes
every client and returns.
*/
package websocket
