// Package invoice holds the Invoice aggregate owned by the invoice service.
package invoice

import (
	"errors"
	"strings"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/errs"
)

var (
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice")
	ErrInvoiceAlreadySent      = errors.New("invoice is already marked as sent")
)

// Invoice references the PDF stored for an order. There is at most one invoice
// per order. SentAt starts empty and is set exactly once.
type Invoice struct {
	id        kernel.UUID
	orderID   kernel.UUID
	objectKey string
	sentAt    *time.Time
	createdAt time.Time

	isConstructed bool
}

// NewInvoice creates an unsent invoice.
func NewInvoice(id, orderID kernel.UUID, objectKey string, now time.Time) (*Invoice, error) {
	return RestoreInvoice(id, orderID, objectKey, nil, now)
}

// RestoreInvoice rebuilds a stored invoice.
func RestoreInvoice(id, orderID kernel.UUID, objectKey string, sentAt *time.Time, createdAt time.Time) (*Invoice, error) {
	var keyErr error
	if strings.TrimSpace(objectKey) == "" {
		keyErr = errs.NewValueIsRequiredError("objectKey")
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), keyErr); err != nil {
		return nil, err
	}

	return &Invoice{
		id:            id,
		orderID:       orderID,
		objectKey:     objectKey,
		sentAt:        sentAt,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// ObjectKey builds the storage locator for an invoice PDF of an order.
func ObjectKey(orderID, fileID kernel.UUID) string {
	return orderID.String() + "/invoices/" + fileID.String() + ".pdf"
}

func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

func (i *Invoice) ID() kernel.UUID {
	return i.id
}

func (i *Invoice) OrderID() kernel.UUID {
	return i.orderID
}

// ObjectKey returns the object storage locator of the PDF.
func (i *Invoice) ObjectKey() string {
	return i.objectKey
}

// SentAt returns nil until the invoice is marked as sent.
func (i *Invoice) SentAt() *time.Time {
	return i.sentAt
}

func (i *Invoice) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Invoice) IsSent() bool {
	return i.sentAt != nil
}

// MarkSent records the sent time. It fails if the invoice was already sent.
func (i *Invoice) MarkSent(now time.Time) error {
	if i.IsSent() {
		return ErrInvoiceAlreadySent
	}
	i.sentAt = &now
	return nil
}
