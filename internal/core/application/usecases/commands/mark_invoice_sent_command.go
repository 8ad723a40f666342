package commands

import (
	"errors"

	"ordersync/internal/core/domain/model/invoice"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/guard"
)

var ErrMarkInvoiceSentCommandIsNotConstructed = errors.New(
	"MarkInvoiceSentCommand must be created via NewMarkInvoiceSentCommand constructor",
)

// MarkInvoiceSentCommand asks to mark the invoice of an order as sent once the
// order is known to be shipped. Hint, when set, is the order's invoice already
// loaded by the caller.
type MarkInvoiceSentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	hint    *invoice.Invoice

	guard guard.ConstructorGuard
}

// NewMarkInvoiceSentCommand builds the command. hint may be nil; when set it
// must belong to orderID.
func NewMarkInvoiceSentCommand(orderID kernel.UUID, hint *invoice.Invoice) (MarkInvoiceSentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkInvoiceSentCommand{}, err
	}

	if hint != nil {
		if err := hint.Validate(); err != nil {
			return MarkInvoiceSentCommand{}, err
		}
		if !hint.OrderID().IsEqual(orderID) {
			return MarkInvoiceSentCommand{}, errs.NewValueIsInvalidError("invoice hint belongs to another order")
		}
	}

	return MarkInvoiceSentCommand{
		orderID: orderID,
		hint:    hint,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MarkInvoiceSentCommand) Validate() error {
	return c.guard.Validate(ErrMarkInvoiceSentCommandIsNotConstructed)
}

func (c MarkInvoiceSentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c MarkInvoiceSentCommand) Hint() *invoice.Invoice {
	return c.hint
}
