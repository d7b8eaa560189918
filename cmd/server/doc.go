// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

// Package main is the entry point of the pizzarec server.
//
// # Startup
//
// The server initializes components in this order:
//
//  1. Configuration: .env, defaults, optional config.yaml and environment (koanf v2)
//  2. Logging: zerolog, with an slog bridge for the supervisor
//  3. Database: DuckDB schema and, if enabled, the house menu seed
//  4. Recommendation engine: circuit-breaker guarded store and a synchronous
//     catalog index build. A failed build, including an empty menu, stops
//     the process before it serves traffic.
//  5. Order ingestion: Badger idempotency store, watermill gochannel
//     pub/sub, publisher and persisting router
//  6. Supervisor tree: index refresh, order router, then the HTTP server
//     once the router is running
//
// # Configuration
//
// Every setting has an environment variable, for example:
//
//	HTTP_PORT=8000
//	DUCKDB_PATH=data/pizzarec.duckdb
//	RECOMMEND_DEFAULT_TOP_N=3
//	RECOMMEND_REFRESH_INTERVAL=15m
//	BREAKER_ENABLED=true
//	ORDERS_IDEMPOTENCY_PATH=data/idempotency
//	LOG_LEVEL=debug
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests, the order router finishes in-flight messages, and the
// stores are closed last.
package main
