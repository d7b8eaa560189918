// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

/*
Package api provides the HTTP surface of the recommendation service.

Routes are served by a chi router:

	GET  /api/v1/recommendations/popular?top_n=N
	GET  /api/v1/recommendations/diet/{diet_type}?top_n=N
	GET  /api/v1/recommendations/user/{user_id}?top_n=N
	GET  /api/v1/recommendations/similar/{pizza_name}?top_n=N
	GET  /api/v1/recommendations/status
	POST /api/v1/recommendations/index/rebuild
	GET  /api/v1/menu-items
	GET  /api/v1/orders/user/{user_id}
	POST /api/v1/orders
	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics

Recommendation endpoints answer with a bare JSON array of pizza names. Every
error is a JSON object with a single "error" field. Engine errors map to
status codes as follows:

	PizzaNotFound            404  Pizza not found: <name>
	NoPizzasForDiet          404  No pizzas found for this diet type: <diet>
	CatalogStoreUnavailable  503  Catalog store unavailable
	IndexNotBuilt            503
	BuildInProgress          409
	validation failures      400

top_n defaults to the configured default (3) and must lie between 1 and the
configured maximum.
*/
package api
