// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

/*
Package supervisor runs the long-lived parts of the service under a suture
supervisor tree.

The tree has three layers, each its own supervisor so a crash in one does
not restart the others:

	pizzarec
	├── data-layer       catalog index refresh
	├── messaging-layer  watermill order router
	└── api-layer        HTTP server

Supervisor events are logged through sutureslog using the slog adapter from
the logging package, so restarts and backoff show up in the same structured
log stream as everything else.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewRouterService(router))
	tree.AddAPIService(services.NewHTTPServerService(server, 15*time.Second))
	errCh := tree.ServeBackground(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
