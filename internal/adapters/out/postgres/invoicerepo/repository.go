package invoicerepo

import (
	"context"
	"errors"
	"time"

	"ordersync/internal/adapters/out/postgres/pgerr"
	"ordersync/internal/core/domain/model/invoice"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInvoiceRepository implements ports.InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db *gorm.DB
}

func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Add inserts an invoice. A second invoice for the same order yields
// ports.ErrUniqueViolation.
func (r *GormInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	dto := fromDomain(inv)
	return pgerr.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "invoice", id, "id = ?")
}

func (r *GormInvoiceRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "invoice for order", orderID, "order_id = ?")
}

// MarkSent sets sent_at once. The update only matches an unsent invoice, so
// concurrent markers cannot overwrite each other.
func (r *GormInvoiceRepository) MarkSent(ctx context.Context, orderID kernel.UUID, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
		Where("order_id = ? AND sent_at IS NULL", orderID.Bytes()).
		Update("sent_at", sentAt)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConditionNotMet
	}

	return nil
}

func (r *GormInvoiceRepository) first(
	ctx context.Context,
	param string,
	id kernel.UUID,
	cond string,
) (*invoice.Invoice, error) {
	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, cond, id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}
