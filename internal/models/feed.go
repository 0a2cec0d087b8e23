// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package models

import "time"

// CacheEntry is the singleton stored result of the last successful refresh.
// It is replaced wholesale on every successful run and never mutated in place.
type CacheEntry struct {
	FetchedAt time.Time `json:"fetchedAt"`
	Payload   []Event   `json:"payload"`
}

// Count returns the number of events in the entry.
func (c *CacheEntry) Count() int {
	return len(c.Payload)
}

// CountBySource tallies the payload per source.
func (c *CacheEntry) CountBySource() map[Source]int {
	counts := make(map[Source]int, 2)
	for i := range c.Payload {
		counts[c.Payload[i].Source]++
	}
	return counts
}

// FeedResponse is the body of a successful GET /events.
//
//	{"lastUpdated": "2026-02-01T12:00:00Z", "events": [...]}
type FeedResponse struct {
	LastUpdated time.Time `json:"lastUpdated"`
	Events      []Event   `json:"events"`
}

// NewFeedResponse builds the wire response for an entry. Events is never nil
// so an empty feed serializes as [] rather than null.
func NewFeedResponse(entry CacheEntry) FeedResponse {
	events := entry.Payload
	if events == nil {
		events = []Event{}
	}
	return FeedResponse{
		LastUpdated: entry.FetchedAt.UTC(),
		Events:      events,
	}
}

// ErrorResponse is the body of a failed request: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FeedRefreshed is published after every successful refresh and relayed to
// WebSocket clients.
type FeedRefreshed struct {
	FetchedAt time.Time      `json:"fetchedAt"`
	Count     int            `json:"count"`
	Sources   map[Source]int `json:"sources"`
}

// NewFeedRefreshed summarizes a freshly stored entry.
func NewFeedRefreshed(entry CacheEntry) FeedRefreshed {
	return FeedRefreshed{
		FetchedAt: entry.FetchedAt.UTC(),
		Count:     entry.Count(),
		Sources:   entry.CountBySource(),
	}
}
