// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
Package feed merges adapter output into the published concert feed.

Normalization:

Normalize reduces every date representation the sources produce (ISO dates,
RFC 3339 and zone-less timestamps, Songkick prose such as
"Saturday February 21, 2026" or "Sat 21 Feb 2026") to YYYY-MM-DD. Anything
else, including the "Unknown date" placeholder, becomes an unknown date.
Display values are only trimmed; comparison keys come from NormalizeKey,
CityKey and VenueKey.

Deduplication:

Two records are the same event when they share a URL, or failing that when
their DescriptiveKey (artist, date, venue or city) matches. Within a group
the first-seen record survives unless a later record carries a later date.

	events, stats := feed.Deduplicate(normalized)
	feed.SortByDate(events)

Pipeline:

Pipeline.Run fetches all sources concurrently and fails with ErrPipeline if
any of them fails. Results are deterministic for deterministic source output.
*/
package feed
