package queries

import (
	"context"
	"log/slog"
	"time"

	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/clock"
	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetInvoiceDownloadURLQueryHandler issues presigned download links.
type GetInvoiceDownloadURLQueryHandler struct {
	db      *gorm.DB
	storage ports.InvoiceFileStorage
	ttl     time.Duration
	clock   clock.Clock
	logger  *slog.Logger
}

func NewGetInvoiceDownloadURLQueryHandler(
	db *gorm.DB,
	storage ports.InvoiceFileStorage,
	ttl time.Duration,
	clk clock.Clock,
	logger *slog.Logger,
) GetInvoiceDownloadURLQueryHandler {
	return GetInvoiceDownloadURLQueryHandler{
		db:      db,
		storage: storage,
		ttl:     ttl,
		clock:   clk,
		logger:  logger.With("component", "invoice-download-url"),
	}
}

func (h GetInvoiceDownloadURLQueryHandler) Handle(
	ctx context.Context,
	query GetInvoiceDownloadURLQuery,
) (GetInvoiceDownloadURLQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetInvoiceDownloadURLQueryResponse{}, err
	}

	inv, err := findInvoice(ctx, h.db, query.InvoiceID())
	if err != nil {
		return GetInvoiceDownloadURLQueryResponse{}, err
	}

	issuedAt := h.clock.Now()
	url, err := h.storage.PresignDownload(
		ctx,
		inv.ObjectKey,
		query.Disposition(),
		inv.ID.String()+".pdf",
		h.ttl,
	)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to presign invoice download",
			"invoice_id", inv.ID.String(),
			"order_id", inv.OrderID.String(),
			"error", err,
		)
		return GetInvoiceDownloadURLQueryResponse{}, errs.NewInternalFaultError(err)
	}

	expiresAt := issuedAt.Add(h.ttl)
	h.logger.InfoContext(ctx, "invoice download url issued",
		"invoice_id", inv.ID.String(),
		"order_id", inv.OrderID.String(),
		"disposition", string(query.Disposition()),
		"expires_at", expiresAt,
	)

	return GetInvoiceDownloadURLQueryResponse{URL: url, ExpiresAt: expiresAt}, nil
}
