// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package feed

import (
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/metalfeed/internal/models"
)

// dateLayouts are tried in order. Timestamps keep the calendar date they
// were written in; no zone conversion happens.
var dateLayouts = []string{
	models.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04",
	"Monday January 2, 2006",
	"Monday, January 2, 2006",
	"Mon January 2, 2006",
	"Monday 2 January 2006",
	"Mon 2 Jan 2006",
	"Mon, 2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Normalize returns a copy of e with its date reduced to YYYY-MM-DD and its
// display fields trimmed. Unparseable dates and date placeholders become
// unknown (empty), as do links that are not absolute http(s) URLs.
func Normalize(e models.Event) models.Event {
	e.Artist = strings.TrimSpace(e.Artist)
	e.Venue = strings.TrimSpace(e.Venue)
	e.City = strings.TrimSpace(e.City)
	e.Genre = strings.TrimSpace(e.Genre)
	e.Date = NormalizeDate(e.Date)
	e.URL = absoluteHTTPURL(e.URL)
	e.Image = absoluteHTTPURL(e.Image)
	return e
}

// NormalizeDate parses raw with every known layout and returns the calendar
// date, or "" when nothing matches.
func NormalizeDate(raw string) string {
	raw = strings.Join(strings.Fields(raw), " ")
	if raw == "" || strings.EqualFold(raw, models.UnknownDate) {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(models.DateLayout)
		}
	}
	return ""
}

// NormalizeKey folds s for comparison: lowercase, trimmed, inner whitespace
// collapsed to single spaces.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// citySuffixes are country qualifiers dropped from city keys.
var citySuffixes = []string{", sweden", ", se"}

// CityKey is NormalizeKey plus removal of a trailing country qualifier, so
// "Stockholm, Sweden" and "stockholm" compare equal. Placeholders yield "".
func CityKey(s string) string {
	k := NormalizeKey(s)
	for _, suffix := range citySuffixes {
		if strings.HasSuffix(k, suffix) {
			k = strings.TrimSpace(strings.TrimSuffix(k, suffix))
			break
		}
	}
	if k == NormalizeKey(models.UnknownCity) {
		return ""
	}
	return k
}

// VenueKey is NormalizeKey with the venue placeholder mapped to "".
func VenueKey(s string) string {
	k := NormalizeKey(s)
	if k == NormalizeKey(models.UnknownVenue) {
		return ""
	}
	return k
}

func absoluteHTTPURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return raw
}
