// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/pizzarec/internal/config"
	"github.com/tomtom215/pizzarec/internal/logging"
	"github.com/tomtom215/pizzarec/internal/metrics"
)

// NewPubSub creates the in-process pub/sub carrying order events.
func NewPubSub(cfg *config.OrdersConfig, logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.Buffer,
	}, logger)
}

// Submission is the outcome of Publisher.Submit.
type Submission struct {
	OrderRef  string
	Duplicate bool
}

// Publisher publishes OrderPlaced events.
type Publisher struct {
	pub   message.Publisher
	topic string
	idem  *IdempotencyStore
	now   func() time.Time
}

// NewPublisher creates a publisher for topic. idem may be nil, in which case
// Idempotency-Key values are ignored.
func NewPublisher(pub message.Publisher, topic string, idem *IdempotencyStore) *Publisher {
	return &Publisher{pub: pub, topic: topic, idem: idem, now: time.Now}
}

// Submit publishes a new order for userID. When idempotencyKey was already
// used, the earlier order reference is returned and nothing is published.
func (p *Publisher) Submit(ctx context.Context, userID string, items []Item, idempotencyKey string) (Submission, error) {
	event := NewOrderPlaced(userID, items, p.now())
	if err := event.Validate(); err != nil {
		return Submission{}, err
	}

	useKey := idempotencyKey != "" && p.idem != nil
	if useKey {
		res, created, err := p.idem.Reserve(idempotencyKey, event.Ref)
		if err != nil {
			return Submission{}, err
		}
		if !created {
			metrics.RecordOrderDeduplicated()
			logging.Ctx(ctx).Debug().
				Str("order_ref", res.OrderRef).
				Msg("Duplicate order submission")
			return Submission{OrderRef: res.OrderRef, Duplicate: true}, nil
		}
	}

	msg, err := Marshal(event, logging.CorrelationIDFromContext(ctx))
	if err != nil {
		p.release(ctx, useKey, idempotencyKey)
		return Submission{}, err
	}

	if err := p.pub.Publish(p.topic, msg); err != nil {
		p.release(ctx, useKey, idempotencyKey)
		return Submission{}, fmt.Errorf("publish order: %w", err)
	}

	metrics.RecordOrderPublished(event.LineCount())
	logging.Ctx(ctx).Info().
		Str("order_ref", event.Ref).
		Str("user_id", userID).
		Int("items", event.LineCount()).
		Msg("Order placed")

	return Submission{OrderRef: event.Ref}, nil
}

func (p *Publisher) release(ctx context.Context, useKey bool, key string) {
	if !useKey {
		return
	}
	if err := p.idem.Release(key); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to release idempotency key")
	}
}
