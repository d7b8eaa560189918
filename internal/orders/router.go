// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/pizzarec/internal/config"
	"github.com/tomtom215/pizzarec/internal/database"
	"github.com/tomtom215/pizzarec/internal/logging"
	"github.com/tomtom215/pizzarec/internal/metrics"
)

// HandlerName is the router handler persisting orders.
const HandlerName = "persist_orders"

// OrderWriter stores orders. Implemented by *database.DB.
type OrderWriter interface {
	InsertOrder(ctx context.Context, order *database.OrderRecord) (int64, error)
}

// NewHandler returns a handler that writes OrderPlaced events to w.
// Undecodable events are logged and acknowledged since retrying cannot fix them.
func NewHandler(w OrderWriter) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx := msg.Context()
		if cid := msg.Metadata.Get(MetadataCorrelationID); cid != "" {
			ctx = logging.ContextWithCorrelationID(ctx, cid)
		}

		event, err := Unmarshal(msg)
		if err != nil {
			metrics.RecordOrderPersisted("invalid")
			logging.Ctx(ctx).Error().
				Err(err).
				Str("message_uuid", msg.UUID).
				Msg("Dropping invalid order event")
			return nil
		}

		id, err := w.InsertOrder(ctx, event.Record())
		if errors.Is(err, database.ErrEmptyOrder) {
			metrics.RecordOrderPersisted("invalid")
			return nil
		}
		if err != nil {
			metrics.RecordOrderPersisted("error")
			return fmt.Errorf("persist order %s: %w", event.Ref, err)
		}

		metrics.RecordOrderPersisted("success")
		logging.Ctx(ctx).Debug().
			Str("order_ref", event.Ref).
			Int64("order_id", id).
			Msg("Order persisted")
		return nil
	}
}

// PoisonTopic returns the topic receiving events that failed every retry.
func PoisonTopic(topic string) string {
	return topic + ".poison"
}

// NewRouter creates a Watermill router consuming cfg.Topic from sub and
// writing orders to w. Events that still fail after the retries are
// published to PoisonTopic on poison, if non-nil.
//
// Middleware order, outer to inner: recoverer, poison queue, retry.
func NewRouter(cfg *config.OrdersConfig, sub message.Subscriber, poison message.Publisher, w OrderWriter, logger watermill.LoggerAdapter) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)

	if poison != nil {
		poisonQueue, err := middleware.PoisonQueue(poison, PoisonTopic(cfg.Topic))
		if err != nil {
			return nil, fmt.Errorf("create poison queue middleware: %w", err)
		}
		router.AddMiddleware(poisonQueue)
	}

	if cfg.RetryCount > 0 {
		retry := middleware.Retry{
			MaxRetries:      cfg.RetryCount,
			InitialInterval: cfg.RetryInterval,
			Multiplier:      2.0,
			Logger:          logger,
		}
		router.AddMiddleware(retry.Middleware)
	}

	router.AddNoPublisherHandler(HandlerName, cfg.Topic, sub, NewHandler(w))

	return router, nil
}
