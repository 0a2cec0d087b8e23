// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/metalfeed/internal/api"
	"github.com/tomtom215/metalfeed/internal/cache"
	"github.com/tomtom215/metalfeed/internal/config"
	"github.com/tomtom215/metalfeed/internal/eventprocessor"
	"github.com/tomtom215/metalfeed/internal/feed"
	"github.com/tomtom215/metalfeed/internal/logging"
	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/supervisor"
	"github.com/tomtom215/metalfeed/internal/supervisor/services"
	"github.com/tomtom215/metalfeed/internal/sync"
	ws "github.com/tomtom215/metalfeed/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Bool("ticketmaster", cfg.Ticketmaster.Enabled).
		Bool("songkick", cfg.Songkick.Enabled).
		Str("cache_backend", cfg.Cache.Backend).
		Bool("events", cfg.Events.Enabled).
		Msg("Starting Metalfeed")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Metalfeed stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires the components and blocks until SIGINT or SIGTERM.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := cache.Open(ctx, &cfg.Cache)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing feed store")
		}
	}()

	pipeline := feed.NewPipeline(sync.NewSources(cfg), cfg.Pipeline.SourceTimeout)
	hub := ws.NewHub()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddMessagingService(services.NewHubService(hub))

	gatewayOpts := []cache.GatewayOption{cache.WithMaxAge(cfg.Cache.MaxAge)}
	if cfg.Events.Enabled {
		bus, publisher, err := initNotifications(cfg, hub, tree)
		if err != nil {
			return err
		}
		defer func() {
			_ = publisher.Close()
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()
		gatewayOpts = append(gatewayOpts, cache.WithNotifier(publisher))
	}
	gateway := cache.NewGateway(store, pipeline, gatewayOpts...)

	chiMW := api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security))
	router := api.NewRouter(api.NewHandler(gateway, hub, cfg), chiMW)
	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		// A forced refresh waits for both upstreams.
		WriteTimeout: cfg.Server.Timeout + cfg.Pipeline.SourceTimeout,
		IdleTimeout:  120 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	return nil
}

// initNotifications opens the feed.refreshed bus, and adds the relay that
// forwards notifications to WebSocket clients.
func initNotifications(cfg *config.Config, hub *ws.Hub, tree *supervisor.SupervisorTree) (*eventprocessor.Bus, *eventprocessor.Publisher, error) {
	busCfg := eventprocessor.BusConfigFrom(&cfg.Events)
	wmLogger := logging.NewWatermillAdapter()

	bus, err := eventprocessor.NewBus(busCfg, wmLogger)
	if err != nil {
		return nil, nil, err
	}

	publisher, err := eventprocessor.NewPublisher(bus.Publisher, busCfg.Topic, eventprocessor.NewCircuitBreaker(busCfg.CircuitBreaker))
	if err != nil {
		_ = bus.Close()
		return nil, nil, err
	}

	tree.AddMessagingService(eventprocessor.NewRelay(bus.Subscriber, busCfg.Topic, hub, wmLogger))

	logging.Info().
		Str("transport", bus.Transport).
		Str("topic", busCfg.Topic).
		Msg("Feed notifications enabled")
	return bus, publisher, nil
}
