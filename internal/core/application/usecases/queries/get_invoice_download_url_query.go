package queries

import (
	"errors"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/guard"
)

var ErrGetInvoiceDownloadURLQueryIsNotConstructed = errors.New(
	"GetInvoiceDownloadURLQuery must be created via NewGetInvoiceDownloadURLQuery constructor",
)

// GetInvoiceDownloadURLQuery asks for a time-limited link to an invoice PDF.
type GetInvoiceDownloadURLQuery struct {
	invoiceID   kernel.UUID
	disposition ports.Disposition

	guard guard.ConstructorGuard
}

// NewGetInvoiceDownloadURLQuery accepts "inline" or "attachment"; an empty
// disposition means attachment.
func NewGetInvoiceDownloadURLQuery(invoiceID kernel.UUID, disposition string) (GetInvoiceDownloadURLQuery, error) {
	if err := invoiceID.Validate(); err != nil {
		return GetInvoiceDownloadURLQuery{}, err
	}

	d := ports.Disposition(disposition)
	switch d {
	case "":
		d = ports.DispositionAttachment
	case ports.DispositionInline, ports.DispositionAttachment:
	default:
		return GetInvoiceDownloadURLQuery{}, errs.NewValueIsInvalidError("disposition")
	}

	return GetInvoiceDownloadURLQuery{
		invoiceID:   invoiceID,
		disposition: d,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetInvoiceDownloadURLQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceDownloadURLQueryIsNotConstructed)
}

func (q GetInvoiceDownloadURLQuery) InvoiceID() kernel.UUID {
	return q.invoiceID
}

func (q GetInvoiceDownloadURLQuery) Disposition() ports.Disposition {
	return q.disposition
}

// GetInvoiceDownloadURLQueryResponse is a presigned link and the instant it stops working.
type GetInvoiceDownloadURLQueryResponse struct {
	URL       string
	ExpiresAt time.Time
}
