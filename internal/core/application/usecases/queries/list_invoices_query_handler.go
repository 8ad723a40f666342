package queries

import (
	"context"

	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListInvoicesQueryHandler struct {
	db *gorm.DB
}

func NewListInvoicesQueryHandler(db *gorm.DB) ListInvoicesQueryHandler {
	return ListInvoicesQueryHandler{db: db}
}

// Handle returns invoices newest first.
func (h ListInvoicesQueryHandler) Handle(ctx context.Context, query ListInvoicesQuery) ([]InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("invoices").Select(invoiceColumns)
	if orderID := query.OrderID(); orderID != nil {
		tx = tx.Where("order_id = ?", orderID.Bytes())
	}

	var rows []invoiceRow
	if err := tx.Order("created_at DESC").Scan(&rows).Error; err != nil {
		return nil, errs.NewInternalFaultError(err)
	}

	views := make([]InvoiceView, 0, len(rows))
	for _, row := range rows {
		view, err := row.view()
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}
