// Package orderrepo persists order aggregates in PostgreSQL with GORM.
package orderrepo

import (
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The composite unique index on (seller_id, client_order_id, customer_id)
// enforces one order per idempotency key.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID      string    `gorm:"not null;uniqueIndex:idx_orders_idempotency_key,priority:1;index"`
	ClientOrderID string    `gorm:"not null;uniqueIndex:idx_orders_idempotency_key,priority:2"`
	CustomerID    string    `gorm:"not null;uniqueIndex:idx_orders_idempotency_key,priority:3;index"`
	ProductID     string    `gorm:"not null"`
	PriceCents    int64     `gorm:"not null"`
	Quantity      int       `gorm:"not null"`
	Status        string    `gorm:"type:varchar(32);not null;index"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID().Bytes(),
		SellerID:      o.SellerID(),
		ClientOrderID: o.ClientOrderID(),
		CustomerID:    o.CustomerID(),
		ProductID:     o.ProductID(),
		PriceCents:    o.PriceCents(),
		Quantity:      o.Quantity(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

// ToDomain rebuilds an order aggregate from its row.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	key, err := order.NewIdempotencyKey(dto.SellerID, dto.ClientOrderID, dto.CustomerID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		key,
		dto.ProductID,
		dto.PriceCents,
		dto.Quantity,
		order.Status(dto.Status),
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
