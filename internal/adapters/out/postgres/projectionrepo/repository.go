package projectionrepo

import (
	"context"
	"errors"

	"ordersync/internal/adapters/out/postgres/pgerr"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/domain/model/projection"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderProjectionRepository implements ports.OrderProjectionRepository using GORM.
type GormOrderProjectionRepository struct {
	db *gorm.DB
}

func NewGormOrderProjectionRepository(db *gorm.DB) *GormOrderProjectionRepository {
	return &GormOrderProjectionRepository{db: db}
}

func (r *GormOrderProjectionRepository) Get(ctx context.Context, orderID kernel.UUID) (*projection.OrderProjection, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderProjectionDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderProjection", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Add inserts the first projection of an order. A concurrent insert for the
// same order yields ports.ErrUniqueViolation.
func (r *GormOrderProjectionRepository) Add(ctx context.Context, p *projection.OrderProjection) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return pgerr.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

// UpdateStatus writes the projection only while the stored status is still expected.
func (r *GormOrderProjectionRepository) UpdateStatus(
	ctx context.Context,
	p *projection.OrderProjection,
	expected order.Status,
) error {
	if err := p.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderProjectionDTO{}).
		Where("order_id = ? AND status = ?", p.OrderID().Bytes(), expected.String()).
		Updates(map[string]any{
			"status":     p.Status().String(),
			"updated_at": p.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConditionNotMet
	}

	return nil
}
