// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package sync

import "strings"

// GenreFilter decides whether a Ticketmaster event belongs in a metal feed.
//
// Rules, first match wins:
//  1. genre or sub-genre contains a blocked term: reject
//  2. genre or sub-genre contains an allowed term: accept
//  3. title contains a keyword: accept
//  4. reject
//
// All comparisons are lowercase substring tests.
type GenreFilter struct {
	allowed  []string
	blocked  []string
	keywords []string
}

// NewGenreFilter builds a filter. The input slices are copied and lowercased.
func NewGenreFilter(allowed, blocked, keywords []string) *GenreFilter {
	return &GenreFilter{
		allowed:  lowerAll(allowed),
		blocked:  lowerAll(blocked),
		keywords: lowerAll(keywords),
	}
}

// Accept applies the filter rules.
func (f *GenreFilter) Accept(genre, subGenre, title string) bool {
	genre = strings.ToLower(genre)
	subGenre = strings.ToLower(subGenre)

	if matchesAny(f.blocked, genre, subGenre) {
		return false
	}
	if matchesAny(f.allowed, genre, subGenre) {
		return true
	}
	return matchesAny(f.keywords, strings.ToLower(title))
}

// matchesAny reports whether any value contains any of terms.
func matchesAny(terms []string, values ...string) bool {
	for _, term := range terms {
		for _, v := range values {
			if v != "" && strings.Contains(v, term) {
				return true
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
