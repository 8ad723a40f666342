// Package invoicerepo persists invoices in PostgreSQL with GORM.
package invoicerepo

import (
	"time"

	"ordersync/internal/core/domain/model/invoice"
	"ordersync/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InvoiceDTO maps an invoice. order_id is unique: one invoice per order.
type InvoiceDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_order_id"`
	ObjectKey string     `gorm:"not null"`
	SentAt    *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

func fromDomain(i *invoice.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:        i.ID().Bytes(),
		OrderID:   i.OrderID().Bytes(),
		ObjectKey: i.ObjectKey(),
		SentAt:    i.SentAt(),
		CreatedAt: i.CreatedAt(),
	}
}

// ToDomain rebuilds an invoice from its row.
func ToDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var sentAt *time.Time
	if dto.SentAt != nil {
		t := dto.SentAt.UTC()
		sentAt = &t
	}

	return invoice.RestoreInvoice(id, orderID, dto.ObjectKey, sentAt, dto.CreatedAt.UTC())
}
