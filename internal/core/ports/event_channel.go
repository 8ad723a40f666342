package ports

import (
	"context"

	"ordersync/internal/core/domain/model/order"
)

// OrderStatusEventChannel hands status events to a durable message channel.
// Delivery to consumers is at-least-once.
type OrderStatusEventChannel interface {
	Publish(ctx context.Context, event order.StatusChangedEvent) error
}
