// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
Package supervisor runs Metalfeed's long-lived services under suture v4.

Tree:

	RootSupervisor ("metalfeed")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── HubService ("websocket-hub")
	│   └── eventprocessor.Relay ("feed-notification-relay", when events are enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService ("http-server")

Crashed services restart with suture's back-off; failures in one layer do
not restart the other. Supervisor events go to the structured logger
through sutureslog.

The feed pipeline is not a service: it runs on demand inside a request,
guarded by the cache gateway's single-flight.

Usage Example:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMessagingService(services.NewHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor tree stopped")
	}
*/
package supervisor
