// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
Package models defines the data structures shared by the Metalfeed pipeline,
cache and HTTP layers.

Key Components:

  - Event: one concert listing from Ticketmaster or Songkick
  - Source: the producing upstream, part of the wire format
  - CacheEntry: the singleton stored feed (fetchedAt + ordered events)
  - FeedResponse / ErrorResponse: bodies of GET /events
  - FeedRefreshed: notification published after a successful refresh

Unknown values are represented by empty strings in Go and by JSON null on the
wire:

	{"source":"Songkick","artist":"Wintersun","venue":null,"city":"Stockholm",
	 "date":"2026-03-14","url":"https://www.songkick.com/concerts/1","image":null}

JSON encoding uses github.com/goccy/go-json.
*/
package models
