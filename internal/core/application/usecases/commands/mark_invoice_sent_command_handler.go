package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/clock"
	"ordersync/internal/pkg/errs"
)

// MarkInvoiceSentCommandHandler sets the sent time of an order's invoice once
// the order projection reaches SHIPPED.
//
// It is a best-effort side effect: failures are logged and never returned, so
// the caller (event consumer, upload, reconciliation job) always proceeds. A
// later SHIPPED delivery or the reconciliation job tries again.
type MarkInvoiceSentCommandHandler struct {
	uowFactory InvoiceUoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

func NewMarkInvoiceSentCommandHandler(
	uowFactory InvoiceUoWFactory,
	clk clock.Clock,
	logger *slog.Logger,
) MarkInvoiceSentCommandHandler {
	return MarkInvoiceSentCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "invoice-sent-marker"),
	}
}

// Handle reports whether this call marked the invoice as sent.
func (h MarkInvoiceSentCommandHandler) Handle(ctx context.Context, cmd MarkInvoiceSentCommand) bool {
	marked, err := h.trySetSent(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to mark invoice as sent",
			"order_id", cmd.OrderID().String(),
			"error", err,
		)
		return false
	}
	return marked
}

func (h MarkInvoiceSentCommandHandler) trySetSent(ctx context.Context, cmd MarkInvoiceSentCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	orderID := cmd.OrderID()

	current, err := uow.OrderProjectionRepository().Get(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !current.IsShipped() {
		return false, nil
	}

	invoices := uow.InvoiceRepository()

	target := cmd.Hint()
	if target == nil {
		target, err = invoices.GetByOrderID(ctx, orderID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}

	if target.IsSent() {
		return false, nil
	}

	sentAt := h.clock.Now()
	err = invoices.MarkSent(ctx, orderID, sentAt)
	if errors.Is(err, ports.ErrConditionNotMet) {
		// Marked by a concurrent delivery in the meantime.
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_ = target.MarkSent(sentAt)

	h.logger.InfoContext(ctx, "invoice marked as sent",
		"order_id", orderID.String(),
		"invoice_id", target.ID().String(),
	)
	return true, nil
}
