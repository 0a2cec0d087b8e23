// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package eventprocessor

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/metalfeed/internal/config"
)

// DefaultTopic is the subject feed.refreshed notifications travel on.
const DefaultTopic = "feed.refreshed"

// BusConfig selects the notification transport.
type BusConfig struct {
	// Topic is the NATS subject / GoChannel topic.
	Topic string

	// NATSURL selects core NATS when set. Empty means an in-process
	// GoChannel, which only reaches subscribers in the same process.
	NATSURL string

	// OutputBuffer is the GoChannel per-subscriber buffer.
	OutputBuffer int64

	Publisher      PublisherConfig
	Subscriber     SubscriberConfig
	CircuitBreaker CircuitBreakerConfig
}

// BusConfigFrom maps application configuration onto bus defaults.
func BusConfigFrom(cfg *config.EventsConfig) BusConfig {
	bus := DefaultBusConfig()
	if topic := strings.TrimSpace(cfg.Topic); topic != "" {
		bus.Topic = topic
	}
	bus.NATSURL = cfg.NATSURL
	bus.Publisher.URL = cfg.NATSURL
	bus.Subscriber.URL = cfg.NATSURL
	return bus
}

// DefaultBusConfig returns an in-process bus on DefaultTopic.
func DefaultBusConfig() BusConfig {
	return BusConfig{
		Topic:          DefaultTopic,
		OutputBuffer:   64,
		Publisher:      DefaultPublisherConfig(""),
		Subscriber:     DefaultSubscriberConfig(""),
		CircuitBreaker: DefaultCircuitBreakerConfig("feed-notifications"),
	}
}

// Validate checks the bus configuration.
func (c *BusConfig) Validate() error {
	if strings.TrimSpace(c.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidConfig)
	}
	if c.NATSURL == "" && c.OutputBuffer < 0 {
		return fmt.Errorf("%w: output buffer must not be negative", ErrInvalidConfig)
	}
	return nil
}

// PublisherConfig holds NATS publisher configuration.
type PublisherConfig struct {
	URL             string
	MaxReconnects   int
	ReconnectWait   time.Duration
	ReconnectBuffer int
}

// DefaultPublisherConfig returns production defaults for publisher.
func DefaultPublisherConfig(url string) PublisherConfig {
	return PublisherConfig{
		URL:             url,
		MaxReconnects:   -1, // Unlimited
		ReconnectWait:   2 * time.Second,
		ReconnectBuffer: 1024 * 1024, // 1MB, notifications are tiny
	}
}

// SubscriberConfig holds NATS subscriber configuration.
//
// There is deliberately no queue group: every instance relays every
// notification to its own WebSocket clients.
type SubscriberConfig struct {
	URL            string
	AckWaitTimeout time.Duration
	CloseTimeout   time.Duration
	MaxReconnects  int
	ReconnectWait  time.Duration
}

// DefaultSubscriberConfig returns production defaults for subscriber.
func DefaultSubscriberConfig(url string) SubscriberConfig {
	return SubscriberConfig{
		URL:            url,
		AckWaitTimeout: 30 * time.Second,
		CloseTimeout:   30 * time.Second,
		MaxReconnects:  -1,
		ReconnectWait:  2 * time.Second,
	}
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32        // Allowed in half-open state
	Interval         time.Duration // Reset interval for counts
	Timeout          time.Duration // Time to stay open
	FailureThreshold uint32        // Failures before opening
}

// DefaultCircuitBreakerConfig returns production defaults.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}
