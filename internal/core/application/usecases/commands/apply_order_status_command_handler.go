package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordersync/internal/core/domain/model/projection"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/clock"
	"ordersync/internal/pkg/errs"
)

// maxMergeAttempts bounds how often a merge is re-read after losing a race
// against another consumer of the same order.
const maxMergeAttempts = 3

// ApplyOrderStatusCommandHandler merges an observed status into the order
// projection. The projection keeps the highest-rank status ever seen, so
// duplicate and out-of-order deliveries converge to the same state.
//
// Every write is conditional on what was read: the first insert relies on the
// unique order id, later updates on the stored status. A lost race re-reads
// and merges again.
type ApplyOrderStatusCommandHandler struct {
	uowFactory InvoiceUoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

func NewApplyOrderStatusCommandHandler(
	uowFactory InvoiceUoWFactory,
	clk clock.Clock,
	logger *slog.Logger,
) ApplyOrderStatusCommandHandler {
	return ApplyOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "order-projection"),
	}
}

// Handle reports whether the projection changed. A stale status leaves it
// untouched and is not an error.
func (h ApplyOrderStatusCommandHandler) Handle(ctx context.Context, cmd ApplyOrderStatusCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	repo := h.uowFactory.Create().OrderProjectionRepository()

	for attempt := 1; attempt <= maxMergeAttempts; attempt++ {
		changed, err := h.merge(ctx, repo, cmd)
		if errors.Is(err, ports.ErrUniqueViolation) || errors.Is(err, ports.ErrConditionNotMet) {
			h.logger.DebugContext(ctx, "projection changed concurrently, merging again",
				"order_id", cmd.OrderID().String(),
				"attempt", attempt,
			)
			continue
		}
		if err != nil {
			return false, internalFault(err)
		}
		return changed, nil
	}

	return false, errs.NewConflictError("order projection keeps changing concurrently")
}

func (h ApplyOrderStatusCommandHandler) merge(
	ctx context.Context,
	repo ports.OrderProjectionRepository,
	cmd ApplyOrderStatusCommand,
) (bool, error) {
	now := h.clock.Now()

	current, err := repo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		created, newErr := projection.NewOrderProjection(cmd.OrderID(), cmd.Status(), now)
		if newErr != nil {
			return false, newErr
		}
		if err = repo.Add(ctx, created); err != nil {
			return false, err
		}

		h.logger.InfoContext(ctx, "order projection created",
			"order_id", cmd.OrderID().String(),
			"status", cmd.Status().String(),
		)
		return true, nil
	}
	if err != nil {
		return false, err
	}

	previous := current.Status()
	if !current.Merge(cmd.Status(), now) {
		h.logger.InfoContext(ctx, "stale order status ignored",
			"order_id", cmd.OrderID().String(),
			"old_status", previous.String(),
			"old_rank", previous.Rank(),
			"new_status", cmd.Status().String(),
			"new_rank", cmd.Status().Rank(),
		)
		return false, nil
	}

	if err = repo.UpdateStatus(ctx, current, previous); err != nil {
		return false, err
	}

	h.logger.InfoContext(ctx, "order projection updated",
		"order_id", cmd.OrderID().String(),
		"old_status", previous.String(),
		"new_status", current.Status().String(),
	)
	return true, nil
}
