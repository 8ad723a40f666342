package queries

import (
	"context"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetInvoiceQueryHandler struct {
	db *gorm.DB
}

func NewGetInvoiceQueryHandler(db *gorm.DB) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the invoice does not exist.
func (h GetInvoiceQueryHandler) Handle(ctx context.Context, query GetInvoiceQuery) (InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return InvoiceView{}, err
	}

	return findInvoice(ctx, h.db, query.InvoiceID())
}

func findInvoice(ctx context.Context, db *gorm.DB, invoiceID kernel.UUID) (InvoiceView, error) {
	var rows []invoiceRow
	err := db.WithContext(ctx).Raw(`
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = ?
	`, invoiceID.Bytes()).Scan(&rows).Error
	if err != nil {
		return InvoiceView{}, errs.NewInternalFaultError(err)
	}

	if len(rows) == 0 {
		return InvoiceView{}, errs.NewObjectNotFoundError("invoice", invoiceID.String())
	}

	return rows[0].view()
}
