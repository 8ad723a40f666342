// Package ports defines the contracts between the application core and its
// infrastructure: stores, the status event channel and invoice file storage.
package ports

import (
	"context"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. Returns ErrUniqueViolation when an order with
	// the same idempotency key already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindByIdempotencyKey retrieves the order created for key.
	// Returns errs.ErrObjectNotFound when absent.
	FindByIdempotencyKey(ctx context.Context, key order.IdempotencyKey) (*order.Order, error)

	// UpdateStatus writes the aggregate's status and update time only if the
	// stored status still equals expected. Returns ErrConditionNotMet otherwise.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error
}
