package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// StatusHistoryRepository stores the append-only audit trail of status changes.
// Entries are never updated or deleted.
type StatusHistoryRepository interface {
	// Append stores one audit entry.
	Append(ctx context.Context, change order.StatusChange) error

	// ListByOrder returns every entry of the order, newest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error)
}
