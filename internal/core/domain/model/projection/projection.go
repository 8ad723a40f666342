// Package projection holds the invoice service's cached view of order status.
package projection

import (
	"errors"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
)

var ErrOrderProjectionIsNotConstructed = errors.New(
	"OrderProjection must be created via NewOrderProjection or RestoreOrderProjection",
)

// OrderProjection is the last known status of an order, as seen by a consumer
// of status events. It may lag the order service. A projection is created on
// the first event for an order and afterwards only moves up in rank.
type OrderProjection struct {
	orderID   kernel.UUID
	status    order.Status
	updatedAt time.Time

	isConstructed bool
}

// NewOrderProjection creates a projection from the first event seen for orderID.
func NewOrderProjection(orderID kernel.UUID, status order.Status, now time.Time) (*OrderProjection, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &OrderProjection{
		orderID:       orderID,
		status:        status,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrderProjection rebuilds a stored projection. The stored status is
// kept as-is even when it is not a known literal; it then ranks as
// order.UnknownRank and is superseded by any known status.
func RestoreOrderProjection(orderID kernel.UUID, status order.Status, updatedAt time.Time) (*OrderProjection, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return &OrderProjection{
		orderID:       orderID,
		status:        status,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (p *OrderProjection) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrOrderProjectionIsNotConstructed
	}
	return nil
}

func (p *OrderProjection) OrderID() kernel.UUID {
	return p.orderID
}

func (p *OrderProjection) Status() order.Status {
	return p.status
}

func (p *OrderProjection) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsShipped reports whether the last known status is SHIPPED.
func (p *OrderProjection) IsShipped() bool {
	return p.status == order.Shipped
}

// Merge applies an incoming status and reports whether the projection changed.
//
// An incoming status whose rank is greater than or equal to the stored rank
// overwrites it; equal rank re-confirms the same state. A lower rank is a stale,
// out-of-order delivery and is discarded. An incoming value unknown to the
// rank table never overrides.
func (p *OrderProjection) Merge(incoming order.Status, now time.Time) bool {
	incomingRank := incoming.Rank()
	if incomingRank == order.UnknownRank || incomingRank < p.status.Rank() {
		return false
	}

	p.status = incoming
	p.updatedAt = now
	return true
}
