package queries

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/guard"
)

var ErrListInvoicesQueryIsNotConstructed = errors.New(
	"ListInvoicesQuery must be created via NewListInvoicesQuery constructor",
)

// ListInvoicesQuery lists invoices, optionally only those of one order.
type ListInvoicesQuery struct {
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewListInvoicesQuery builds the query. A nil orderID lists every invoice.
func NewListInvoicesQuery(orderID *kernel.UUID) (ListInvoicesQuery, error) {
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return ListInvoicesQuery{}, err
		}
	}

	return ListInvoicesQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListInvoicesQuery) Validate() error {
	return q.guard.Validate(ErrListInvoicesQueryIsNotConstructed)
}

func (q ListInvoicesQuery) OrderID() *kernel.UUID {
	return q.orderID
}
