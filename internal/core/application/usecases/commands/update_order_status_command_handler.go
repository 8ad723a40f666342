package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/clock"
	"ordersync/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler validates and applies status transitions.
//
// The write is conditional on the status read at the start of the call, so at
// most one of several concurrent writers starting from the same status wins;
// the others get a ConflictError and may retry from the read.
//
// Re-submitting the current status is a no-op and emits nothing.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	emitter    StatusEventEmitter
	clock      clock.Clock
	logger     *slog.Logger
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	emitter StatusEventEmitter,
	clk clock.Clock,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
		clock:      clk,
		logger:     logger.With("component", "update-order-status"),
	}
}

// Handle returns the order in its new state. It returns ObjectNotFoundError,
// InvalidTransitionError, ConflictError or InternalFaultError on failure.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, internalFault(err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, internalFault(err)
	}

	previous := aggregate.Status()
	if previous == cmd.Status() {
		return aggregate, nil
	}

	if err = aggregate.ChangeStatus(cmd.Status(), h.clock.Now()); err != nil {
		return nil, err
	}

	err = repo.UpdateStatus(ctx, aggregate, previous)
	if errors.Is(err, ports.ErrConditionNotMet) {
		return nil, errs.NewConflictErrorWithCause("order status was changed concurrently", err)
	}
	if err != nil {
		return nil, internalFault(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, internalFault(err)
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", aggregate.ID().String(),
		"old_status", previous.String(),
		"new_status", aggregate.Status().String(),
	)

	if err = h.emitter.Emit(ctx, aggregate.ID(), aggregate.Status()); err != nil {
		h.logger.ErrorContext(ctx, "status event not published, transition already committed",
			"order_id", aggregate.ID().String(),
			"status", aggregate.Status().String(),
			"error", err,
		)
		return nil, internalFault(err)
	}

	return aggregate, nil
}
