package historyrepo

import (
	"context"
	"fmt"

	"restaurant/internal/adapters/out/postgres/dberr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"gorm.io/gorm"
)

const entity = "status change"

// GormStatusHistoryRepository implements ports.StatusHistoryRepository using GORM.
// It only inserts and reads; entries are never updated or deleted.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

// Append inserts one audit entry.
func (r *GormStatusHistoryRepository) Append(ctx context.Context, change order.StatusChange) error {
	dto := fromDomain(change)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Classify(err, entity, change.ID().String())
	}
	return nil
}

// ListByOrder returns the entries of orderID, newest first. An entry that cannot
// be restored fails the whole read.
func (r *GormStatusHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusChangeDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Classify(err, entity, orderID.String())
	}

	changes := make([]order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		change, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, fmt.Errorf("status change %s: %w", dto.ID, restoreErr)
		}
		changes = append(changes, change)
	}

	return changes, nil
}
