// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package eventprocessor

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
)

// Transports.
const (
	TransportGoChannel = "gochannel"
	TransportNATS      = "nats"
)

// Bus is a publisher/subscriber pair on one transport.
type Bus struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
	Transport  string
}

// NewBus opens the transport selected by cfg: core NATS when a URL is set,
// an in-process GoChannel otherwise.
func NewBus(cfg BusConfig, logger watermill.LoggerAdapter) (*Bus, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	if cfg.NATSURL == "" {
		ch := gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.OutputBuffer,
		}, logger)
		return &Bus{Publisher: ch, Subscriber: ch, Transport: TransportGoChannel}, nil
	}

	pub, err := newNATSPublisher(&cfg.Publisher, logger)
	if err != nil {
		return nil, err
	}
	sub, err := newNATSSubscriber(&cfg.Subscriber, logger)
	if err != nil {
		_ = pub.Close()
		return nil, err
	}
	return &Bus{Publisher: pub, Subscriber: sub, Transport: TransportNATS}, nil
}

// Close closes both halves. A GoChannel bus is closed once.
func (b *Bus) Close() error {
	pubErr := b.Publisher.Close()
	if b.Transport == TransportGoChannel {
		return pubErr
	}
	return errors.Join(pubErr, b.Subscriber.Close())
}

// natsOptions returns connection options with reconnection handling.
func natsOptions(maxReconnects int, reconnectWait time.Duration, logger watermill.LoggerAdapter) []natsgo.Option {
	return []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(maxReconnects),
		natsgo.ReconnectWait(reconnectWait),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}
}

// Notifications are ephemeral, so JetStream is disabled on both halves:
// a browser that was not connected has nothing to catch up on.
func newNATSPublisher(cfg *PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	opts := append(natsOptions(cfg.MaxReconnects, cfg.ReconnectWait, logger),
		natsgo.ReconnectBufSize(cfg.ReconnectBuffer))

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: opts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}
	return pub, nil
}

func newNATSSubscriber(cfg *SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.URL,
		SubscribersCount: 1,
		AckWaitTimeout:   cfg.AckWaitTimeout,
		CloseTimeout:     cfg.CloseTimeout,
		NatsOptions:      natsOptions(cfg.MaxReconnects, cfg.ReconnectWait, logger),
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}
	return sub, nil
}
