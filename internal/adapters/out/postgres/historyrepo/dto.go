// Package historyrepo stores the append-only status audit trail in "order_status_history".
package historyrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StatusChangeDTO is one audit entry.
type StatusChangeDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index:idx_history_order_time,priority:1;not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	Status     string    `gorm:"type:varchar(32);not null"`
	OccurredAt time.Time `gorm:"index:idx_history_order_time,priority:2;not null"`
}

func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(change order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		ID:         change.ID().Bytes(),
		OrderID:    change.OrderID().Bytes(),
		ActorID:    change.ActorID().Bytes(),
		Status:     change.NewStatus().String(),
		OccurredAt: change.OccurredAt(),
	}
}

func toDomain(dto StatusChangeDTO) (order.StatusChange, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.StatusChange{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusChange{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.StatusChange{}, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return order.StatusChange{}, err
	}

	return order.RestoreStatusChange(id, orderID, actorID, status, dto.OccurredAt)
}
