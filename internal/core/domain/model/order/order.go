package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a commerce order owned by the order service. It is created once per
// idempotency key and afterwards changes only through validated status
// transitions. Orders are never deleted.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a complete idempotency key
//   - Price is expressed in minor units and is never negative
//   - Quantity is positive
//   - Status starts at CREATED and follows the state machine in Status
type Order struct {
	id         kernel.UUID
	key        IdempotencyKey
	productID  string
	priceCents int64
	quantity   int
	status     Status
	createdAt  time.Time
	updatedAt  time.Time

	isConstructed bool
}

// NewOrder creates an order in CREATED status.
//
// Example:
//
//	key, _ := order.NewIdempotencyKey(sellerID, clientOrderID, customerID)
//	o, err := order.NewOrder(kernel.NewUUID(), key, productID, 1999, 2, clk.Now())
//	if err != nil {
//	    return err
//	}
func NewOrder(
	id kernel.UUID,
	key IdempotencyKey,
	productID string,
	priceCents int64,
	quantity int,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setKey(key),
		o.setProductID(productID),
		o.setPriceCents(priceCents),
		o.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(
	id kernel.UUID,
	key IdempotencyKey,
	productID string,
	priceCents int64,
	quantity int,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setKey(key),
		o.setProductID(productID),
		o.setPriceCents(priceCents),
		o.setQuantity(quantity),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by one of its constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) IdempotencyKey() IdempotencyKey {
	return o.key
}

func (o *Order) SellerID() string {
	return o.key.SellerID()
}

func (o *Order) CustomerID() string {
	return o.key.CustomerID()
}

func (o *Order) ClientOrderID() string {
	return o.key.ClientOrderID()
}

func (o *Order) ProductID() string {
	return o.productID
}

// PriceCents returns the amount in minor units.
func (o *Order) PriceCents() int64 {
	return o.priceCents
}

func (o *Order) Quantity() int {
	return o.quantity
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order to next if the state machine allows it.
// The in-memory order is left untouched on error.
func (o *Order) ChangeStatus(next Status, now time.Time) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setKey(key IdempotencyKey) error {
	if key.IsZero() {
		return errs.NewValueIsRequiredError("idempotency key")
	}
	o.key = key
	return nil
}

func (o *Order) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	o.productID = productID
	return nil
}

func (o *Order) setPriceCents(priceCents int64) error {
	if priceCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("priceCents is invalid", fmt.Errorf("%d is negative", priceCents))
	}
	o.priceCents = priceCents
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
