// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

/*
Package breaker guards the catalog store with a circuit breaker.

Store implements recommend.CatalogStore on top of another CatalogStore. Every
call runs through a sony/gobreaker breaker; once the failure ratio over the
measurement window reaches the configured threshold the breaker opens and
calls fail fast until the open timeout elapses.

Failures and rejections are returned as *recommend.StoreUnavailableError, so
callers see a single CatalogStoreUnavailable kind whether the database failed
or the breaker refused the call. Context cancellation is the caller giving
up and is not counted against the store.

Breaker state is exported through the circuit_breaker_* Prometheus metrics.
*/
package breaker
