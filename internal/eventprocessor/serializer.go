// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package eventprocessor

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/metalfeed/internal/models"
)

// Serializer handles notification encoding/decoding for bus messages.
type Serializer struct{}

// NewSerializer creates a new serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Marshal converts a notification to JSON bytes.
func (s *Serializer) Marshal(event models.FeedRefreshed) ([]byte, error) {
	if event.FetchedAt.IsZero() {
		return nil, fmt.Errorf("validate event: fetchedAt is required")
	}
	if event.Count < 0 {
		return nil, fmt.Errorf("validate event: negative count %d", event.Count)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal converts JSON bytes to a notification.
func (s *Serializer) Unmarshal(data []byte) (models.FeedRefreshed, error) {
	var event models.FeedRefreshed
	if err := json.Unmarshal(data, &event); err != nil {
		return models.FeedRefreshed{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
