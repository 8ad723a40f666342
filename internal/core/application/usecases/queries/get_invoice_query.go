package queries

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/guard"
)

var ErrGetInvoiceQueryIsNotConstructed = errors.New(
	"GetInvoiceQuery must be created via NewGetInvoiceQuery constructor",
)

// GetInvoiceQuery retrieves a single invoice by its own id.
type GetInvoiceQuery struct {
	invoiceID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetInvoiceQuery(invoiceID kernel.UUID) (GetInvoiceQuery, error) {
	if err := invoiceID.Validate(); err != nil {
		return GetInvoiceQuery{}, err
	}

	return GetInvoiceQuery{invoiceID: invoiceID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetInvoiceQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceQueryIsNotConstructed)
}

func (q GetInvoiceQuery) InvoiceID() kernel.UUID {
	return q.invoiceID
}
