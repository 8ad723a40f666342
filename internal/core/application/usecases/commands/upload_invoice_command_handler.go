package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"ordersync/internal/core/domain/model/invoice"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/clock"
	"ordersync/internal/pkg/errs"
)

const pdfContentType = "application/pdf"

// SentMarker marks an order's invoice as sent when the order is shipped.
type SentMarker interface {
	Handle(ctx context.Context, cmd MarkInvoiceSentCommand) bool
}

// UploadInvoiceCommandHandler stores an invoice PDF and registers it for the
// order. An order has at most one invoice.
//
// The order may have shipped before its invoice arrived, so the sent-marker
// runs right after the insert with the new invoice as hint.
type UploadInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	storage    ports.InvoiceFileStorage
	marker     SentMarker
	clock      clock.Clock
	logger     *slog.Logger
}

func NewUploadInvoiceCommandHandler(
	uowFactory InvoiceUoWFactory,
	storage ports.InvoiceFileStorage,
	marker SentMarker,
	clk clock.Clock,
	logger *slog.Logger,
) UploadInvoiceCommandHandler {
	return UploadInvoiceCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		marker:     marker,
		clock:      clk,
		logger:     logger.With("component", "upload-invoice"),
	}
}

// Handle returns the stored invoice. It returns ConflictError when the order
// already has an invoice.
func (h UploadInvoiceCommandHandler) Handle(ctx context.Context, cmd UploadInvoiceCommand) (*invoice.Invoice, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	repo := h.uowFactory.Create().InvoiceRepository()
	orderID := cmd.OrderID()

	_, err := repo.GetByOrderID(ctx, orderID)
	switch {
	case err == nil:
		return nil, errs.NewConflictError("invoice already exists for order " + orderID.String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, internalFault(err)
	}

	objectKey := invoice.ObjectKey(orderID, kernel.NewUUID())
	content := cmd.Content()
	if err = h.storage.Upload(ctx, objectKey, bytes.NewReader(content), int64(len(content)), pdfContentType); err != nil {
		h.logger.ErrorContext(ctx, "failed to store invoice file",
			"order_id", orderID.String(),
			"object_key", objectKey,
			"error", err,
		)
		return nil, internalFault(err)
	}

	created, err := invoice.NewInvoice(kernel.NewUUID(), orderID, objectKey, h.clock.Now())
	if err != nil {
		return nil, err
	}

	err = repo.Add(ctx, created)
	if errors.Is(err, ports.ErrUniqueViolation) {
		return nil, errs.NewConflictErrorWithCause("invoice already exists for order "+orderID.String(), err)
	}
	if err != nil {
		return nil, internalFault(err)
	}

	h.logger.InfoContext(ctx, "invoice uploaded",
		"order_id", orderID.String(),
		"invoice_id", created.ID().String(),
		"object_key", objectKey,
	)

	markCmd, err := NewMarkInvoiceSentCommand(orderID, created)
	if err == nil {
		h.marker.Handle(ctx, markCmd)
	}

	return created, nil
}
