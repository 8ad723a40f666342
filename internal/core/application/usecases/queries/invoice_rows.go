package queries

import (
	"time"

	"ordersync/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

const invoiceColumns = `
	id,
	order_id,
	object_key,
	sent_at,
	created_at`

// InvoiceView is the read model of an invoice.
type InvoiceView struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	ObjectKey string
	SentAt    *time.Time
	CreatedAt time.Time
}

type invoiceRow struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ObjectKey string
	SentAt    *time.Time
	CreatedAt time.Time
}

func (r invoiceRow) view() (InvoiceView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return InvoiceView{}, err
	}

	orderID, err := kernel.UUIDFromBytes(r.OrderID[:])
	if err != nil {
		return InvoiceView{}, err
	}

	var sentAt *time.Time
	if r.SentAt != nil {
		t := r.SentAt.UTC()
		sentAt = &t
	}

	return InvoiceView{
		ID:        id,
		OrderID:   orderID,
		ObjectKey: r.ObjectKey,
		SentAt:    sentAt,
		CreatedAt: r.CreatedAt.UTC(),
	}, nil
}
