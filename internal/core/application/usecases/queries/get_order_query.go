// Package queries contains read-only operations of the CQRS architecture.
// Query handlers read straight from the database with SQL and return flat
// views instead of aggregates.
package queries

import (
	"errors"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order by id.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderView is the read model of an order.
type OrderView struct {
	ID            kernel.UUID
	SellerID      string
	CustomerID    string
	ClientOrderID string
	ProductID     string
	PriceCents    int64
	Quantity      int
	Status        order.Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
