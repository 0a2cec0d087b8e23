// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package eventprocessor

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/models"
)

// MessageHandler consumes one topic until its context ends.
type MessageHandler struct {
	subscriber message.Subscriber
	topic      string
	handler    func(ctx context.Context, msg *message.Message) error
	logger     watermill.LoggerAdapter
}

// NewMessageHandler creates a handler for processing messages from the given topic.
func NewMessageHandler(sub message.Subscriber, topic string, logger watermill.LoggerAdapter) *MessageHandler {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &MessageHandler{
		subscriber: sub,
		topic:      topic,
		logger:     logger,
	}
}

// Handle sets the message processing function.
// The function should return an error if processing fails (message will be nacked).
func (h *MessageHandler) Handle(fn func(ctx context.Context, msg *message.Message) error) *MessageHandler {
	h.handler = fn
	return h
}

// Run processes messages until ctx is canceled or the subscription closes.
// Messages are acked on success and nacked on error.
func (h *MessageHandler) Run(ctx context.Context) error {
	messages, err := h.subscriber.Subscribe(ctx, h.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", h.topic, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return ctx.Err()
			}
			if err := h.processMessage(ctx, msg); err != nil {
				h.logger.Error("Message processing failed", err, watermill.LogFields{
					"message_uuid": msg.UUID,
					"topic":        h.topic,
				})
			}
		}
	}
}

func (h *MessageHandler) processMessage(ctx context.Context, msg *message.Message) error {
	if h.handler == nil {
		msg.Ack()
		return nil
	}

	if err := h.handler(ctx, msg); err != nil {
		msg.Nack()
		return err
	}

	msg.Ack()
	return nil
}

// Broadcaster receives decoded notifications. websocket.Hub implements it.
type Broadcaster interface {
	BroadcastFeedRefreshed(event models.FeedRefreshed)
}

// Relay forwards feed.refreshed notifications from the bus to a
// Broadcaster. It is a suture service.
type Relay struct {
	handler    *MessageHandler
	serializer *Serializer
	sink       Broadcaster
	logger     watermill.LoggerAdapter
}

// NewRelay creates a relay from topic on sub to sink.
func NewRelay(sub message.Subscriber, topic string, sink Broadcaster, logger watermill.LoggerAdapter) *Relay {
	r := &Relay{
		serializer: NewSerializer(),
		sink:       sink,
		logger:     logger,
	}
	r.handler = NewMessageHandler(sub, topic, logger).Handle(r.handle)
	if r.logger == nil {
		r.logger = r.handler.logger
	}
	return r
}

// Serve implements suture.Service.
func (r *Relay) Serve(ctx context.Context) error {
	return r.handler.Run(ctx)
}

// String implements fmt.Stringer for supervisor logs.
func (r *Relay) String() string {
	return "feed-notification-relay"
}

// handle acks undecodable payloads: redelivery cannot fix them.
func (r *Relay) handle(_ context.Context, msg *message.Message) error {
	event, err := r.serializer.Unmarshal(msg.Payload)
	if err != nil {
		r.logger.Error("Dropping undecodable notification", err, watermill.LogFields{
			"message_uuid": msg.UUID,
		})
		return nil
	}

	metrics.NotificationsConsumed.Inc()
	r.sink.BroadcastFeedRefreshed(event)
	return nil
}
