package ports

import (
	"context"
	"time"

	"ordersync/internal/core/domain/model/invoice"
	"ordersync/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoices.
type InvoiceRepository interface {
	// Add inserts an invoice. Returns ErrUniqueViolation when the order already
	// has one.
	Add(ctx context.Context, inv *invoice.Invoice) error

	// Get returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	// GetByOrderID returns errs.ErrObjectNotFound when the order has no invoice.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error)

	// MarkSent sets sent_at for the order's invoice if it is still unset.
	// Returns ErrConditionNotMet when there is no unsent invoice for orderID.
	MarkSent(ctx context.Context, orderID kernel.UUID, sentAt time.Time) error
}
