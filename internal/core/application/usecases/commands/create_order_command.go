package commands

import (
	"errors"
	"strings"

	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new order. The seller,
// customer and clientOrderId together form the idempotency key.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("seller-1", "customer-7", "req-42", "sku-9", 1999, 2)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	res, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("order %s, created: %v", res.Order.ID(), res.Created)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	key        order.IdempotencyKey
	productID  string
	priceCents int64
	quantity   int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. Every reference must be
// non-blank, price must not be negative and quantity must be positive.
func NewCreateOrderCommand(
	sellerID, customerID, clientOrderID, productID string,
	priceCents int64,
	quantity int,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKey(sellerID, clientOrderID, customerID),
		cmd.setProductID(productID),
		cmd.setPriceCents(priceCents),
		cmd.setQuantity(quantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) IdempotencyKey() order.IdempotencyKey {
	return c.key
}

func (c CreateOrderCommand) ProductID() string {
	return c.productID
}

func (c CreateOrderCommand) PriceCents() int64 {
	return c.priceCents
}

func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

func (c *CreateOrderCommand) setKey(sellerID, clientOrderID, customerID string) error {
	key, err := order.NewIdempotencyKey(sellerID, clientOrderID, customerID)
	if err != nil {
		return err
	}

	c.key = key
	return nil
}

func (c *CreateOrderCommand) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("productId")
	}

	c.productID = productID
	return nil
}

func (c *CreateOrderCommand) setPriceCents(priceCents int64) error {
	if priceCents < 0 {
		return errs.NewValueIsOutOfRangeError("priceCents", priceCents, 0, "max int64")
	}

	c.priceCents = priceCents
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "max int")
	}

	c.quantity = quantity
	return nil
}
