package commands

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/guard"
)

var ErrApplyOrderStatusCommandIsNotConstructed = errors.New(
	"ApplyOrderStatusCommand must be created via NewApplyOrderStatusCommand constructor",
)

// ApplyOrderStatusCommand carries a status observed on the message channel
// into the order projection.
type ApplyOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

func NewApplyOrderStatusCommand(orderID kernel.UUID, status order.Status) (ApplyOrderStatusCommand, error) {
	cmd := ApplyOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return ApplyOrderStatusCommand{}, err
	}
	if err := status.Validate(); err != nil {
		return ApplyOrderStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.status = status
	return cmd, nil
}

func (c ApplyOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrApplyOrderStatusCommandIsNotConstructed)
}

func (c ApplyOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ApplyOrderStatusCommand) Status() order.Status {
	return c.status
}
