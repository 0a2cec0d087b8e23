// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package eventprocessor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/metalfeed/internal/models"
)

type chanSink struct {
	events chan models.FeedRefreshed
}

func (s *chanSink) BroadcastFeedRefreshed(event models.FeedRefreshed) {
	s.events <- event
}

// publishUntil republishes msg until done fires. GoChannel drops messages
// published before a subscription exists.
func publishUntil(t *testing.T, pub message.Publisher, payload []byte, done <-chan struct{}) {
	t.Helper()
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		if err := pub.Publish(DefaultTopic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
			t.Errorf("Publish() error = %v", err)
			return
		}
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

func TestRelay_ForwardsToBroadcaster(t *testing.T) {
	bus := newTestBus(t)
	sink := &chanSink{events: make(chan models.FeedRefreshed, 100)}
	relay := NewRelay(bus.Subscriber, DefaultTopic, sink, watermill.NopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- relay.Serve(ctx) }()

	payload, _ := NewSerializer().Marshal(sampleNotification())
	received := make(chan struct{})
	go func() {
		select {
		case event := <-sink.events:
			if event.Count != 42 {
				t.Errorf("Count = %d, want 42", event.Count)
			}
		case <-time.After(5 * time.Second):
			t.Error("relay never forwarded the notification")
		}
		close(received)
	}()
	publishUntil(t, bus.Publisher, payload, received)

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
	if relay.String() != "feed-notification-relay" {
		t.Errorf("String() = %q", relay.String())
	}
}

func TestRelay_DropsUndecodable(t *testing.T) {
	sink := &chanSink{events: make(chan models.FeedRefreshed, 1)}
	relay := NewRelay(nil, DefaultTopic, sink, nil)

	msg := message.NewMessage(watermill.NewUUID(), []byte("{broken"))
	if err := relay.handler.processMessage(context.Background(), msg); err != nil {
		t.Errorf("processMessage() error = %v, want nil (acked)", err)
	}
	select {
	case <-msg.Acked():
	default:
		t.Error("undecodable message was not acked")
	}
	if len(sink.events) != 0 {
		t.Error("undecodable message reached the sink")
	}
}

func TestMessageHandler_NacksOnError(t *testing.T) {
	handler := NewMessageHandler(nil, DefaultTopic, nil).Handle(func(context.Context, *message.Message) error {
		return errors.New("boom")
	})

	msg := message.NewMessage(watermill.NewUUID(), nil)
	if err := handler.processMessage(context.Background(), msg); err == nil {
		t.Error("processMessage() error = nil, want boom")
	}
	select {
	case <-msg.Nacked():
	default:
		t.Error("message was not nacked")
	}
}

func TestMessageHandler_NoHandlerAcks(t *testing.T) {
	msg := message.NewMessage(watermill.NewUUID(), nil)
	if err := NewMessageHandler(nil, DefaultTopic, nil).processMessage(context.Background(), msg); err != nil {
		t.Errorf("processMessage() error = %v", err)
	}
	select {
	case <-msg.Acked():
	default:
		t.Error("message was not acked")
	}
}
