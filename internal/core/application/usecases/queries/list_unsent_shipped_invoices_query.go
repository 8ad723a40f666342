package queries

import (
	"errors"

	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/guard"
)

var ErrListUnsentShippedInvoicesQueryIsNotConstructed = errors.New(
	"ListUnsentShippedInvoicesQuery must be created via NewListUnsentShippedInvoicesQuery constructor",
)

// ListUnsentShippedInvoicesQuery finds invoices that are still unsent although
// the projection of their order already reached SHIPPED.
type ListUnsentShippedInvoicesQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewListUnsentShippedInvoicesQuery(limit int) (ListUnsentShippedInvoicesQuery, error) {
	if limit < 1 {
		return ListUnsentShippedInvoicesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "max int")
	}

	return ListUnsentShippedInvoicesQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUnsentShippedInvoicesQuery) Validate() error {
	return q.guard.Validate(ErrListUnsentShippedInvoicesQueryIsNotConstructed)
}

func (q ListUnsentShippedInvoicesQuery) Limit() int {
	return q.limit
}
