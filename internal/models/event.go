// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package models

import (
	"github.com/goccy/go-json"

	"github.com/tomtom215/metalfeed/internal/validation"
)

// Source identifies the upstream that produced an Event. It is set by the
// producing adapter and never inferred from other fields.
type Source string

// Known sources. The string values are part of the wire format.
const (
	SourceTicketmaster Source = "Ticketmaster"
	SourceSongkick     Source = "Songkick"
)

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	return s == SourceTicketmaster || s == SourceSongkick
}

// Placeholders written by the Ticketmaster adapter when the API omits a field.
// The normalizer treats UnknownDate as a missing date; the venue and city
// placeholders are kept for display but ignored by the dedup key.
const (
	UnknownVenue   = "Unknown venue"
	UnknownCity    = "Unknown city"
	UnknownDate    = "Unknown date"
	UndefinedGenre = "Undefined"
)

// DateLayout is the canonical calendar date format of Event.Date.
const DateLayout = "2006-01-02"

// Event is one concert listing.
//
// Empty strings mean "unknown" and are written as JSON null, so the wire
// shape is always {source, artist, venue, city, date, url, image, genre?}.
// Genre is only ever populated by Ticketmaster and is omitted when empty.
type Event struct {
	Source Source `validate:"required,oneof=Ticketmaster Songkick"`
	Artist string `validate:"required"`
	Venue  string
	City   string
	Date   string `validate:"omitempty,isodate"` // YYYY-MM-DD once normalized
	URL    string `validate:"omitempty,http_url"`
	Image  string
	Genre  string
}

// HasDate reports whether the event carries a date value.
func (e *Event) HasDate() bool {
	return e.Date != ""
}

// Validate checks the invariants of an admitted event: known source,
// non-empty artist, a real calendar date and an absolute URL when present.
func (e *Event) Validate() error {
	if err := validation.ValidateStruct(e); err != nil {
		return err
	}
	return nil
}

// eventJSON is the wire representation of Event.
type eventJSON struct {
	Source Source  `json:"source"`
	Artist string  `json:"artist"`
	Venue  *string `json:"venue"`
	City   *string `json:"city"`
	Date   *string `json:"date"`
	URL    *string `json:"url"`
	Image  *string `json:"image"`
	Genre  string  `json:"genre,omitempty"`
}

// MarshalJSON writes unknown fields as null.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		Source: e.Source,
		Artist: e.Artist,
		Venue:  nullable(e.Venue),
		City:   nullable(e.City),
		Date:   nullable(e.Date),
		URL:    nullable(e.URL),
		Image:  nullable(e.Image),
		Genre:  e.Genre,
	})
}

// UnmarshalJSON reads null fields back as empty strings.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w eventJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Event{
		Source: w.Source,
		Artist: w.Artist,
		Venue:  deref(w.Venue),
		City:   deref(w.City),
		Date:   deref(w.Date),
		URL:    deref(w.URL),
		Image:  deref(w.Image),
		Genre:  w.Genre,
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
