// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package feed

import (
	"strings"

	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/models"
)

// DedupStats summarizes one Deduplicate pass.
type DedupStats struct {
	Input    int // records seen
	Dropped  int // records merged into an existing group
	Replaced int // survivors replaced by a later-dated record
}

// DescriptiveKey is the fallback identity of an event: artist, date and
// venue, case-insensitive. Without a venue the city fills the venue slot.
func DescriptiveKey(e *models.Event) string {
	place := VenueKey(e.Venue)
	if place == "" {
		place = CityKey(e.City)
	}
	return NormalizeKey(e.Artist) + "|" + e.Date + "|" + place
}

// urlKey is the primary identity. Trailing slashes and fragments are ignored.
func urlKey(raw string) string {
	raw, _, _ = strings.Cut(strings.TrimSpace(raw), "#")
	return strings.TrimRight(raw, "/")
}

// matchKey returns the descriptive key when it is complete enough to
// identify an event. A key missing its date or place would merge unrelated
// records of the same artist, so it is not used for matching.
func matchKey(e *models.Event) string {
	if !e.HasDate() || (VenueKey(e.Venue) == "" && CityKey(e.City) == "") {
		return ""
	}
	return DescriptiveKey(e)
}

// Deduplicate groups records that describe the same event and keeps one
// survivor per group, in first-seen position.
//
// A record joins a group when its URL was already seen, else when its
// descriptive key was. Descriptive keys without a date or a place never
// match. Both of its identities are then registered to that
// group. When the record and the survivor both carry dates and the dates
// differ, the later date wins and the record replaces the survivor.
func Deduplicate(events []models.Event) ([]models.Event, DedupStats) {
	stats := DedupStats{Input: len(events)}
	out := make([]models.Event, 0, len(events))
	byURL := make(map[string]int, len(events))
	byKey := make(map[string]int, len(events))

	for i := range events {
		e := events[i]
		uk := urlKey(e.URL)
		dk := matchKey(&e)

		idx, found := -1, false
		if uk != "" {
			idx, found = byURL[uk]
		}
		if !found && dk != "" {
			idx, found = byKey[dk]
		}

		if !found {
			idx = len(out)
			out = append(out, e)
		} else {
			stats.Dropped++
			if supersedes(&e, &out[idx]) {
				out[idx] = e
				stats.Replaced++
			}
		}

		if uk != "" {
			if _, ok := byURL[uk]; !ok {
				byURL[uk] = idx
			}
		}
		if dk != "" {
			if _, ok := byKey[dk]; !ok {
				byKey[dk] = idx
			}
		}
	}

	metrics.RecordDedup(stats.Dropped, stats.Replaced)
	return out, stats
}

// supersedes reports whether candidate carries a later valid date than
// survivor. Dates are normalized YYYY-MM-DD, so string order is date order.
func supersedes(candidate, survivor *models.Event) bool {
	if !candidate.HasDate() || !survivor.HasDate() {
		return false
	}
	return candidate.Date > survivor.Date
}
