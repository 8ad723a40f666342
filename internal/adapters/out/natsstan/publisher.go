package natsstan

import (
	"context"
	"fmt"
	"log/slog"

	"ordersync/internal/adapters/wire"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"

	stan "github.com/nats-io/stan.go"
)

// Conn is the part of stan.Conn the publisher uses.
type Conn interface {
	Publish(subject string, data []byte) error
}

var _ Conn = (stan.Conn)(nil)

// StatusEventPublisher sends order status events to a NATS Streaming subject.
type StatusEventPublisher struct {
	conn    Conn
	subject string
	logger  *slog.Logger
}

var _ ports.OrderStatusEventChannel = (*StatusEventPublisher)(nil)

func NewStatusEventPublisher(conn Conn, subject string, logger *slog.Logger) *StatusEventPublisher {
	return &StatusEventPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With("component", "order-status-publisher"),
	}
}

// Publish blocks until the streaming server acknowledges the message.
func (p *StatusEventPublisher) Publish(ctx context.Context, event order.StatusChangedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := wire.EncodeStatusChanged(event)
	if err != nil {
		return fmt.Errorf("encode status event: %w", err)
	}

	if err = p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", p.subject, err)
	}

	p.logger.DebugContext(ctx, "status event published",
		"event_id", event.EventID().String(),
		"order_id", event.OrderID().String(),
		"status", event.Status().String(),
		"subject", p.subject,
	)
	return nil
}
