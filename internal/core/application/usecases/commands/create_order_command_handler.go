package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/clock"
	"ordersync/internal/pkg/errs"
)

// CreateOrderResult carries the stored order and whether this call created it.
// Created is false when an order with the same idempotency key already existed.
type CreateOrderResult struct {
	Order   *order.Order
	Created bool
}

// CreateOrderCommandHandler creates orders idempotently. The first write for an
// idempotency key wins; later requests with the same key get the stored order
// back unchanged, even when their payload differs.
//
// Concurrent requests for the same key are settled by the store's uniqueness
// constraint: the loser of the insert re-reads the winner.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clk clock.Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "create-order"),
	}
}

// Handle runs without an explicit transaction: the insert is a single atomic
// statement, and the re-read after a lost race must see the winner's commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	repo := h.uowFactory.Create().OrderRepository()
	key := cmd.IdempotencyKey()

	existing, err := repo.FindByIdempotencyKey(ctx, key)
	switch {
	case err == nil:
		return CreateOrderResult{Order: existing, Created: false}, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return CreateOrderResult{}, internalFault(err)
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		key,
		cmd.ProductID(),
		cmd.PriceCents(),
		cmd.Quantity(),
		h.clock.Now(),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	err = repo.Add(ctx, aggregate)
	if err == nil {
		h.logger.InfoContext(ctx, "order created",
			"order_id", aggregate.ID().String(),
			"seller_id", key.SellerID(),
			"client_order_id", key.ClientOrderID(),
		)
		return CreateOrderResult{Order: aggregate, Created: true}, nil
	}
	if !errors.Is(err, ports.ErrUniqueViolation) {
		return CreateOrderResult{}, internalFault(err)
	}

	winner, err := repo.FindByIdempotencyKey(ctx, key)
	switch {
	case err == nil:
		h.logger.DebugContext(ctx, "concurrent create resolved to existing order",
			"order_id", winner.ID().String(),
			"client_order_id", key.ClientOrderID(),
		)
		return CreateOrderResult{Order: winner, Created: false}, nil
	case errors.Is(err, errs.ErrObjectNotFound):
		return CreateOrderResult{}, errs.NewConflictErrorWithCause(
			"order with the same idempotency key is being created concurrently", err,
		)
	default:
		return CreateOrderResult{}, internalFault(err)
	}
}
