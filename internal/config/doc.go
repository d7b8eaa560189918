// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

/*
Package config loads Pizzarec configuration.

Configuration is layered with Koanf v2, lowest precedence first:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file, from CONFIG_PATH or the DefaultConfigPaths
 3. Environment variables, mapped explicitly by envTransformFunc

A .env file in the working directory is read before the environment layer
is applied. Variables already set in the process environment win over the
file.

# Environment Variables

Server:

	HTTP_HOST, HTTP_PORT, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT,
	HTTP_SHUTDOWN_TIMEOUT, ENVIRONMENT

Database:

	DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS, SEED_MENU

Recommendations:

	RECOMMEND_FALLBACK_PIZZA, RECOMMEND_DEFAULT_TOP_N, RECOMMEND_MAX_TOP_N,
	RECOMMEND_BUILD_TIMEOUT, RECOMMEND_STORE_TIMEOUT, RECOMMEND_SEED

Circuit breaker around the catalog store:

	BREAKER_ENABLED, BREAKER_MAX_REQUESTS, BREAKER_INTERVAL, BREAKER_TIMEOUT,
	BREAKER_MIN_REQUESTS, BREAKER_FAILURE_RATIO

Order ingestion:

	ORDERS_TOPIC, ORDERS_BUFFER, ORDERS_IDEMPOTENCY_PATH, ORDERS_IDEMPOTENCY_TTL,
	ORDERS_RETRY_COUNT, ORDERS_RETRY_INTERVAL, ORDERS_CLOSE_TIMEOUT

Security and logging:

	CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT,
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Durations use Go syntax ("30s", "5m"). CORS_ORIGINS is comma separated.
*/
package config
