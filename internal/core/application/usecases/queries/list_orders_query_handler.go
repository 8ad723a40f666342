package queries

import (
	"context"

	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler pages through orders with optional filters.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	filtered := h.db.WithContext(ctx).Table("orders")
	if query.SellerID() != "" {
		filtered = filtered.Where("seller_id = ?", query.SellerID())
	}
	if query.CustomerID() != "" {
		filtered = filtered.Where("customer_id = ?", query.CustomerID())
	}
	if query.Status() != "" {
		filtered = filtered.Where("status = ?", query.Status().String())
	}

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, errs.NewInternalFaultError(err)
	}

	var rows []orderRow
	err := filtered.Session(&gorm.Session{}).
		Select(orderColumns).
		Order("created_at DESC, id DESC").
		Offset(query.Skip()).
		Limit(query.Limit()).
		Scan(&rows).Error
	if err != nil {
		return ListOrdersQueryResponse{}, errs.NewInternalFaultError(err)
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, viewErr := row.view()
		if viewErr != nil {
			return ListOrdersQueryResponse{}, viewErr
		}
		views = append(views, view)
	}

	return ListOrdersQueryResponse{Data: views, Total: total}, nil
}
