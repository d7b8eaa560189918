// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package main

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/pizzarec/internal/config"
	"github.com/tomtom215/pizzarec/internal/logging"
	"github.com/tomtom215/pizzarec/internal/orders"
)

// ordersComponents holds the order ingestion pipeline.
type ordersComponents struct {
	PubSub      *gochannel.GoChannel
	Publisher   *orders.Publisher
	Router      *message.Router
	Idempotency *orders.IdempotencyStore
}

// initOrders wires the idempotency store, the in-process pub/sub, the
// publisher used by POST /orders, and the router persisting orders to w.
// Failed messages go to the poison topic on the same pub/sub.
func initOrders(cfg *config.Config, w orders.OrderWriter) (*ordersComponents, error) {
	idem, err := orders.OpenIdempotencyStore(cfg.Orders.IdempotencyPath, cfg.Orders.IdempotencyTTL)
	if err != nil {
		return nil, fmt.Errorf("open idempotency store: %w", err)
	}

	wmLogger := watermill.NewSlogLogger(logging.NewSlogLogger())
	pubsub := orders.NewPubSub(&cfg.Orders, wmLogger)

	router, err := orders.NewRouter(&cfg.Orders, pubsub, pubsub, w, wmLogger)
	if err != nil {
		closeQuietly(pubsub, "pubsub")
		closeQuietly(idem, "idempotency store")
		return nil, err
	}

	path := cfg.Orders.IdempotencyPath
	if path == "" {
		path = "(memory)"
	}
	logging.Info().
		Str("topic", cfg.Orders.Topic).
		Str("poison_topic", orders.PoisonTopic(cfg.Orders.Topic)).
		Str("idempotency_path", path).
		Int("retry_count", cfg.Orders.RetryCount).
		Msg("Order ingestion initialized")

	return &ordersComponents{
		PubSub:      pubsub,
		Publisher:   orders.NewPublisher(pubsub, cfg.Orders.Topic, idem),
		Router:      router,
		Idempotency: idem,
	}, nil
}

// Close shuts down the pub/sub and then the idempotency store. The router
// has already stopped with the supervisor tree.
func (c *ordersComponents) Close() {
	closeQuietly(c.PubSub, "pubsub")
	closeQuietly(c.Idempotency, "idempotency store")
}

type closer interface {
	Close() error
}

func closeQuietly(c closer, name string) {
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Str("component", name).Msg("Close failed")
	}
}
