// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
songkick_parser.go - Songkick markup extraction

Pure functions from HTML text to candidate events. Nothing here performs I/O,
so the parsers are tested directly against fixture markup.

Listing page (metro area, genre metal):

	li.event-listings-element
	  .artists strong          artist (first match)
	  time[datetime]           ISO timestamp, date part kept
	  .venue-link              venue
	  .city-name               city
	  a.event-link[href]       event page, usually site-relative
	  img.artist-profile-image data-src or src

Event page:

	.venue-container .venue-wrapper .list-item   [0] venue, [1] street address
	.related-events-content li                   related events

Markup drift degrades individual fields. It never produces an error: the
only error returned is a failure to read the document at all.
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tomtom215/metalfeed/internal/models"
)

// defaultArtistImageMarker identifies Songkick's placeholder artwork.
const defaultArtistImageMarker = "default-artist"

// EventPage holds what an event detail page adds to a listing.
type EventPage struct {
	Venue   string
	City    string
	Related []models.Event
}

// ParseListings extracts candidate events from a metro-area listing page.
// Listings without an artist are skipped. Relative links are resolved
// against baseURL.
func ParseListings(html, baseURL string) ([]models.Event, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	events := make([]models.Event, 0)
	doc.Find("li.event-listings-element").Each(func(_ int, s *goquery.Selection) {
		artist := text(s.Find(".artists strong").First())
		if artist == "" {
			return
		}

		date := ""
		if dt, ok := s.Find("time").First().Attr("datetime"); ok {
			date, _, _ = strings.Cut(strings.TrimSpace(dt), "T")
		}

		href, _ := s.Find("a.event-link").First().Attr("href")

		img := s.Find("img.artist-profile-image").First()
		image, _ := img.Attr("data-src")
		if image == "" {
			image, _ = img.Attr("src")
		}

		events = append(events, models.Event{
			Source: models.SourceSongkick,
			Artist: artist,
			Venue:  text(s.Find(".venue-link").First()),
			City:   text(s.Find(".city-name").First()),
			Date:   date,
			URL:    absoluteURL(href, baseURL),
			Image:  imageURL(image),
		})
	})

	return events, nil
}

// ParseEventPage extracts the venue, the city and the related events block
// from an event detail page. Related events need both an artist and a link.
func ParseEventPage(html, baseURL string) (EventPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return EventPage{}, fmt.Errorf("failed to parse event page: %w", err)
	}

	var page EventPage

	items := doc.Find(".venue-container .venue-wrapper .list-item")
	if items.Length() > 0 {
		page.Venue = text(items.Eq(0))
		if address := text(items.Eq(1)); strings.Contains(address, ",") {
			page.City = strings.TrimSpace(address[strings.LastIndex(address, ",")+1:])
		}
	}

	doc.Find(".related-events-content li").Each(func(_ int, s *goquery.Selection) {
		artist := text(s.Find(".title").First())
		href, _ := s.Find("a.event-card-link").First().Attr("href")
		link := absoluteURL(href, baseURL)
		if artist == "" || link == "" {
			return
		}

		venue, city := splitVenueCity(text(s.Find(".subtitle").First()))
		image, _ := s.Find("img.related-event-image").First().Attr("src")

		page.Related = append(page.Related, models.Event{
			Source: models.SourceSongkick,
			Artist: artist,
			Venue:  venue,
			City:   city,
			Date:   text(s.Find(".date").First()), // prose, resolved by the normalizer
			URL:    link,
			Image:  imageURL(image),
		})
	})

	return page, nil
}

// splitVenueCity splits "Venue, City". Without a comma the whole text is
// taken as the venue.
func splitVenueCity(s string) (venue, city string) {
	v, c, found := strings.Cut(s, ",")
	if !found {
		return s, ""
	}
	c, _, _ = strings.Cut(c, ",")
	return strings.TrimSpace(v), strings.TrimSpace(c)
}

// text returns the selection text with whitespace runs collapsed.
func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// absoluteURL resolves site-relative links against baseURL.
func absoluteURL(href, baseURL string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return strings.TrimRight(baseURL, "/") + href
	default:
		return href
	}
}

// imageURL fixes protocol-relative artwork and drops the placeholder image.
func imageURL(src string) string {
	src = strings.TrimSpace(src)
	if strings.HasPrefix(src, "//") {
		src = "https:" + src
	}
	if strings.Contains(src, defaultArtistImageMarker) {
		return ""
	}
	return src
}
