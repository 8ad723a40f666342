package ports

import (
	"context"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/domain/model/projection"
)

// OrderProjectionRepository stores the consumer-side view of order status.
type OrderProjectionRepository interface {
	// Get returns errs.ErrObjectNotFound when no event was seen for orderID yet.
	Get(ctx context.Context, orderID kernel.UUID) (*projection.OrderProjection, error)

	// Add inserts the first projection for an order. Returns ErrUniqueViolation
	// when a concurrent consumer inserted it first.
	Add(ctx context.Context, p *projection.OrderProjection) error

	// UpdateStatus writes the projection only if the stored status still equals
	// expected. Returns ErrConditionNotMet otherwise.
	UpdateStatus(ctx context.Context, p *projection.OrderProjection, expected order.Status) error
}
