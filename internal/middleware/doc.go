// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: X-Request-ID propagation plus request and correlation IDs in
    the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - LatencyTracker: rolling per-route latency percentiles reported by the
    recommendation status endpoint

All middleware uses the func(http.Handler) http.Handler shape so it can be
passed straight to chi's Use and With.

Metric and latency labels use the chi route pattern (for example
/api/v1/recommendations/user/{user_id}) rather than the raw path, so user IDs
and pizza names never become label values.
*/
package middleware
