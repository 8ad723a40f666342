package queries

import (
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"

	"github.com/google/uuid"
)

const orderColumns = `
	id,
	seller_id,
	customer_id,
	client_order_id,
	product_id,
	price_cents,
	quantity,
	status,
	created_at,
	updated_at`

type orderRow struct {
	ID            uuid.UUID
	SellerID      string
	CustomerID    string
	ClientOrderID string
	ProductID     string
	PriceCents    int64
	Quantity      int
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r orderRow) view() (OrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:            id,
		SellerID:      r.SellerID,
		CustomerID:    r.CustomerID,
		ClientOrderID: r.ClientOrderID,
		ProductID:     r.ProductID,
		PriceCents:    r.PriceCents,
		Quantity:      r.Quantity,
		Status:        order.Status(r.Status),
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}, nil
}
