// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

/*
Package orders ingests placed orders.

Orders arrive through the HTTP API and are published as OrderPlaced events on
the orders.placed topic of a Watermill pub/sub. A router handler consumes the
topic and writes each order to the catalog database, where the recommendation
engine reads it as order history.

Flow:

	POST /api/v1/orders
	  -> Publisher.Submit       (Idempotency-Key check in Badger)
	  -> gochannel "orders.placed"
	  -> Router handler         (retry, recoverer)
	  -> database.InsertOrder   (orders + order_items, keyed by order ref)

Duplicate submissions are absorbed at two levels. The Idempotency-Key store
returns the reference of an earlier submission without publishing again, and
InsertOrder treats an already stored order reference as success, so a
redelivered event never creates a second order.

The Badger store runs in memory when no directory is configured. Keys expire
after the configured TTL.
*/
package orders
