// Package natsstan consumes order status events from NATS Streaming.
package natsstan

import (
	"context"
	"log/slog"
	"time"

	"ordersync/internal/adapters/wire"
	"ordersync/internal/core/domain/model/order"

	stan "github.com/nats-io/stan.go"
)

const (
	DefaultAckWait        = 30 * time.Second
	DefaultMaxInflight    = 50
	DefaultHandlerTimeout = 10 * time.Second
)

// StatusChangedHandler processes one decoded event. A returned error leaves the
// message unacknowledged so the server redelivers it after AckWait.
type StatusChangedHandler interface {
	Handle(ctx context.Context, event order.StatusChangedEvent) error
}

// Conn is the part of stan.Conn the subscriber uses.
type Conn interface {
	QueueSubscribe(subject, qgroup string, cb stan.MsgHandler, opts ...stan.SubscriptionOption) (stan.Subscription, error)
}

var _ Conn = (stan.Conn)(nil)

type SubscriberConfig struct {
	Subject        string
	QueueGroup     string
	Durable        string
	AckWait        time.Duration
	MaxInflight    int
	HandlerTimeout time.Duration
}

// Subscriber is a durable queue subscription in manual ack mode.
type Subscriber struct {
	cfg     SubscriberConfig
	handler StatusChangedHandler
	logger  *slog.Logger
}

func NewSubscriber(cfg SubscriberConfig, handler StatusChangedHandler, logger *slog.Logger) *Subscriber {
	if cfg.AckWait <= 0 {
		cfg.AckWait = DefaultAckWait
	}
	if cfg.MaxInflight <= 0 {
		cfg.MaxInflight = DefaultMaxInflight
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = DefaultHandlerTimeout
	}

	return &Subscriber{
		cfg:     cfg,
		handler: handler,
		logger:  logger.With("component", "order-status-subscriber"),
	}
}

// Subscribe starts delivery and closes the subscription once ctx is done.
// Closing keeps the durable position for the next start.
func (s *Subscriber) Subscribe(ctx context.Context, conn Conn) error {
	sub, err := conn.QueueSubscribe(s.cfg.Subject, s.cfg.QueueGroup, func(m *stan.Msg) {
		if !s.process(ctx, m.Data) {
			return
		}
		if ackErr := m.Ack(); ackErr != nil {
			s.logger.ErrorContext(ctx, "ack failed", "sequence", m.Sequence, "error", ackErr)
		}
	},
		stan.DurableName(s.cfg.Durable),
		stan.SetManualAckMode(),
		stan.AckWait(s.cfg.AckWait),
		stan.MaxInflight(s.cfg.MaxInflight),
		stan.DeliverAllAvailable(),
	)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "subscribed",
		"subject", s.cfg.Subject,
		"queue_group", s.cfg.QueueGroup,
		"durable", s.cfg.Durable,
		"max_inflight", s.cfg.MaxInflight,
	)

	go func() {
		<-ctx.Done()
		if closeErr := sub.Close(); closeErr != nil {
			s.logger.Error("subscription close failed", "error", closeErr)
		}
	}()

	return nil
}

// process reports whether the message should be acknowledged.
func (s *Subscriber) process(ctx context.Context, data []byte) bool {
	event, err := wire.DecodeStatusChanged(data)
	if err != nil {
		// Redelivery cannot fix the payload.
		s.logger.ErrorContext(ctx, "dropping malformed status event",
			"payload", string(data),
			"error", err,
		)
		return true
	}

	hCtx, cancel := context.WithTimeout(ctx, s.cfg.HandlerTimeout)
	defer cancel()

	if err = s.handler.Handle(hCtx, event); err != nil {
		s.logger.WarnContext(ctx, "status event not processed, awaiting redelivery",
			"event_id", event.EventID().String(),
			"order_id", event.OrderID().String(),
			"status", event.Status().String(),
			"error", err,
		)
		return false
	}

	return true
}
