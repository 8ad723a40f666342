package queries

import (
	"context"

	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListUnsentShippedInvoicesQueryHandler struct {
	db *gorm.DB
}

func NewListUnsentShippedInvoicesQueryHandler(db *gorm.DB) ListUnsentShippedInvoicesQueryHandler {
	return ListUnsentShippedInvoicesQueryHandler{db: db}
}

// Handle returns the oldest candidates first.
func (h ListUnsentShippedInvoicesQueryHandler) Handle(
	ctx context.Context,
	query ListUnsentShippedInvoicesQuery,
) ([]InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []invoiceRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			i.id,
			i.order_id,
			i.object_key,
			i.sent_at,
			i.created_at
		FROM invoices i
		JOIN order_projections p ON p.order_id = i.order_id
		WHERE i.sent_at IS NULL AND p.status = ?
		ORDER BY i.created_at
		LIMIT ?
	`, order.Shipped.String(), query.Limit()).Scan(&rows).Error
	if err != nil {
		return nil, errs.NewInternalFaultError(err)
	}

	views := make([]InvoiceView, 0, len(rows))
	for _, row := range rows {
		view, viewErr := row.view()
		if viewErr != nil {
			return nil, viewErr
		}
		views = append(views, view)
	}

	return views, nil
}
