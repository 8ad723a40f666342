package commands

import (
	"context"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/clock"
	"ordersync/internal/pkg/errs"
)

// StatusEventEmitter announces a confirmed status transition.
type StatusEventEmitter interface {
	Emit(ctx context.Context, orderID kernel.UUID, status order.Status) error
}

// StatusEventPublisher turns a committed transition into a uniquely identified
// event and hands it to the message channel.
//
// Emit runs after the transition is committed. If the channel rejects the
// event, the transition stays applied and the notification is lost; the caller
// only learns about it through the returned InternalFaultError.
type StatusEventPublisher struct {
	channel ports.OrderStatusEventChannel
	clock   clock.Clock
}

func NewStatusEventPublisher(channel ports.OrderStatusEventChannel, clk clock.Clock) StatusEventPublisher {
	return StatusEventPublisher{
		channel: channel,
		clock:   clk,
	}
}

func (p StatusEventPublisher) Emit(ctx context.Context, orderID kernel.UUID, status order.Status) error {
	event, err := order.NewStatusChangedEvent(orderID, status, p.clock.Now())
	if err != nil {
		return err
	}

	if err = p.channel.Publish(ctx, event); err != nil {
		return errs.NewInternalFaultError(err)
	}

	return nil
}
