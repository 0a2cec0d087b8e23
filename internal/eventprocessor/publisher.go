// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/models"
)

// Publisher sends feed.refreshed notifications with circuit breaker
// protection. It implements cache.Notifier.
type Publisher struct {
	publisher      message.Publisher
	topic          string
	circuitBreaker *gobreaker.CircuitBreaker[struct{}]
	serializer     *Serializer
	mu             sync.RWMutex
	closed         bool
}

// NewPublisher wraps a Watermill publisher. cb may be nil.
func NewPublisher(pub message.Publisher, topic string, cb *gobreaker.CircuitBreaker[struct{}]) (*Publisher, error) {
	if pub == nil {
		return nil, ErrNilPublisher
	}
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidConfig)
	}
	return &Publisher{
		publisher:      pub,
		topic:          topic,
		circuitBreaker: cb,
		serializer:     NewSerializer(),
	}, nil
}

// Publish sends msg on the configured topic.
func (p *Publisher) Publish(ctx context.Context, msg *message.Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPublisherClosed
	}
	p.mu.RUnlock()

	msg.SetContext(ctx)

	var err error
	if p.circuitBreaker != nil {
		_, err = p.circuitBreaker.Execute(func() (struct{}, error) {
			return struct{}{}, p.publisher.Publish(p.topic, msg)
		})
	} else {
		err = p.publisher.Publish(p.topic, msg)
	}

	switch {
	case err == nil:
		metrics.RecordNotificationPublish("success")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordNotificationPublish("rejected")
	default:
		metrics.RecordNotificationPublish("error")
	}
	return err
}

// NotifyFeedRefreshed serializes and publishes a notification.
func (p *Publisher) NotifyFeedRefreshed(ctx context.Context, event models.FeedRefreshed) error {
	data, err := p.serializer.Marshal(event)
	if err != nil {
		return fmt.Errorf("serialize event: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), data)
	msg.Metadata.Set("fetched_at", event.FetchedAt.UTC().Format(time.RFC3339))
	msg.Metadata.Set("count", strconv.Itoa(event.Count))

	if err := p.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", p.topic, err)
	}
	return nil
}

// Close marks the publisher closed. The underlying transport belongs to the
// Bus and is closed there.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
