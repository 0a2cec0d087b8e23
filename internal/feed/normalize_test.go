// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package feed

import (
	"testing"

	"github.com/tomtom215/metalfeed/internal/models"
)

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"2026-02-21", "2026-02-21"},
		{"2026-02-21T19:00:00Z", "2026-02-21"},
		{"2026-02-21T23:30:00-05:00", "2026-02-21"},
		{"2026-02-21T19:00:00", "2026-02-21"},
		{"2026-02-21T19:00:00+0100", "2026-02-21"},
		{"Saturday February 21, 2026", "2026-02-21"},
		{"  Saturday   February 21, 2026 ", "2026-02-21"},
		{"Sat 21 Feb 2026", "2026-02-21"},
		{"Saturday 21 February 2026", "2026-02-21"},
		{"February 21, 2026", "2026-02-21"},
		{"21 Feb 2026", "2026-02-21"},
		{"Unknown date", ""},
		{"unknown date", ""},
		{"TBA", ""},
		{"2026-02-30", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeDate(tt.raw); got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := models.Event{
		Source: models.SourceSongkick,
		Artist: "  Dark Tranquillity ",
		Venue:  " Pustervik",
		City:   "Göteborg, Sweden ",
		Date:   "Fri 6 Mar 2026",
		URL:    " https://www.songkick.com/concerts/7 ",
		Image:  "/images/relative.jpg",
	}

	got := Normalize(in)

	want := models.Event{
		Source: models.SourceSongkick,
		Artist: "Dark Tranquillity",
		Venue:  "Pustervik",
		City:   "Göteborg, Sweden",
		Date:   "2026-03-06",
		URL:    "https://www.songkick.com/concerts/7",
	}
	if got != want {
		t.Errorf("Normalize() = %+v, want %+v", got, want)
	}
	if in.Artist != "  Dark Tranquillity " {
		t.Error("Normalize() must not modify its input")
	}
}

func TestNormalize_KeepsPlaceholdersForDisplay(t *testing.T) {
	t.Parallel()

	got := Normalize(models.Event{
		Source: models.SourceTicketmaster,
		Artist: "Sabaton",
		Venue:  models.UnknownVenue,
		City:   models.UnknownCity,
		Date:   models.UnknownDate,
		Genre:  models.UndefinedGenre,
	})

	if got.Venue != models.UnknownVenue || got.City != models.UnknownCity {
		t.Errorf("display placeholders changed: %q / %q", got.Venue, got.City)
	}
	if got.Date != "" {
		t.Errorf("Date = %q, want unknown", got.Date)
	}
	if got.Genre != models.UndefinedGenre {
		t.Errorf("Genre = %q, want %q", got.Genre, models.UndefinedGenre)
	}
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"  In  Flames ", "in flames"},
		{"IN FLAMES", "in flames"},
		{"In\tFlames\n", "in flames"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCityKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Stockholm, Sweden", "stockholm"},
		{"stockholm", "stockholm"},
		{"Malmö, SE", "malmö"},
		{" Göteborg ,  Sweden ", "göteborg"},
		{"Unknown city", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CityKey(tt.in); got != tt.want {
			t.Errorf("CityKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVenueKey(t *testing.T) {
	t.Parallel()

	if got := VenueKey("Unknown venue"); got != "" {
		t.Errorf("VenueKey(placeholder) = %q, want empty", got)
	}
	if got := VenueKey(" Debaser  Strand "); got != "debaser strand" {
		t.Errorf("VenueKey() = %q, want %q", got, "debaser strand")
	}
}
