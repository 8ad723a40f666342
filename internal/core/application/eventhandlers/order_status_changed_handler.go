// Package eventhandlers reacts to order status events arriving from the order service.
package eventhandlers

import (
	"context"
	"log/slog"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/domain/model/order"
)

type ProjectionMerger interface {
	Handle(ctx context.Context, cmd commands.ApplyOrderStatusCommand) (bool, error)
}

type SentMarker interface {
	Handle(ctx context.Context, cmd commands.MarkInvoiceSentCommand) bool
}

// OrderStatusChangedHandler merges the event into the local projection, then
// tries to mark the order's invoice as sent.
type OrderStatusChangedHandler struct {
	merger ProjectionMerger
	marker SentMarker
	logger *slog.Logger
}

func NewOrderStatusChangedHandler(merger ProjectionMerger, marker SentMarker, logger *slog.Logger) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{
		merger: merger,
		marker: marker,
		logger: logger.With("component", "order-status-changed"),
	}
}

// Handle fails only when the merge fails. The sent-marker is best effort.
func (h *OrderStatusChangedHandler) Handle(ctx context.Context, event order.StatusChangedEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	applyCmd, err := commands.NewApplyOrderStatusCommand(event.OrderID(), event.Status())
	if err != nil {
		return err
	}

	applied, err := h.merger.Handle(ctx, applyCmd)
	if err != nil {
		return err
	}

	h.logger.DebugContext(ctx, "status event merged",
		"event_id", event.EventID().String(),
		"order_id", event.OrderID().String(),
		"status", event.Status().String(),
		"applied", applied,
	)

	markCmd, err := commands.NewMarkInvoiceSentCommand(event.OrderID(), nil)
	if err != nil {
		return err
	}
	h.marker.Handle(ctx, markCmd)

	return nil
}
