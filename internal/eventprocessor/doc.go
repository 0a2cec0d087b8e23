// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

// Package eventprocessor carries feed.refreshed notifications over Watermill.
//
// After the cache gateway stores a fresh feed it calls
// Publisher.NotifyFeedRefreshed. A Relay subscribed to the same topic hands
// each notification to the WebSocket hub, which pushes it to browsers.
//
//	┌──────────────┐  feed.refreshed  ┌───────────┐  ┌──────────────┐
//	│ cache.Gateway├─────────────────►│   Relay   ├─►│ websocket.Hub│
//	└──────────────┘   NATS or        └───────────┘  └──────────────┘
//	                   GoChannel
//
// # Transports
//
// NewBus picks the transport from BusConfig.NATSURL:
//   - empty: an in-process gochannel.GoChannel. Only this process hears it.
//   - set: core NATS via watermill-nats. Every instance behind a load
//     balancer hears every refresh, so all their clients are told.
//
// JetStream is not used. A notification that nobody receives has no value
// later.
//
// # Failure Handling
//
// Publishing goes through a gobreaker circuit breaker so a dead broker costs
// one fast rejection per refresh instead of a timeout. The gateway logs
// publish errors and carries on: notifications never fail a feed request.
//
// # Message Format
//
//	{"fetchedAt":"2026-02-01T12:00:00Z","count":42,
//	 "sources":{"Ticketmaster":30,"Songkick":12}}
package eventprocessor
