// Package projectionrepo persists the invoice service's order projections.
package projectionrepo

import (
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/domain/model/projection"

	"github.com/google/uuid"
)

// OrderProjectionDTO is one row per order id.
type OrderProjectionDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status    string    `gorm:"type:varchar(32);not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (OrderProjectionDTO) TableName() string {
	return "order_projections"
}

func fromDomain(p *projection.OrderProjection) OrderProjectionDTO {
	return OrderProjectionDTO{
		OrderID:   p.OrderID().Bytes(),
		Status:    p.Status().String(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func toDomain(dto OrderProjectionDTO) (*projection.OrderProjection, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return projection.RestoreOrderProjection(orderID, order.Status(dto.Status), dto.UpdatedAt.UTC())
}
