// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

/*
Package services adapts the long-running components of the service to
suture.Service.

  - HTTPServerService runs an *http.Server and shuts it down gracefully.
  - RouterService runs the watermill router that persists placed orders.
  - IndexRefreshService rebuilds the catalog index on an interval.

Every wrapper returns ctx.Err() when its context is canceled and implements
fmt.Stringer so supervisor events name it.
*/
package services
