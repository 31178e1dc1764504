package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderEventType names an order notification.
type OrderEventType string

const (
	OrderPlaced        OrderEventType = "order.placed"
	OrderStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent tells staff-facing systems that an order was placed or moved.
type OrderEvent struct {
	ID         kernel.UUID
	Type       OrderEventType
	OrderID    kernel.UUID
	Number     string
	CustomerID kernel.UUID
	ActorID    kernel.UUID
	Status     order.Status
	Total      kernel.Money
	OccurredAt time.Time
}

// NewOrderPlacedEvent describes a freshly created order.
func NewOrderPlacedEvent(o *order.Order) OrderEvent {
	return OrderEvent{
		ID:         kernel.NewUUID(),
		Type:       OrderPlaced,
		OrderID:    o.ID(),
		Number:     o.Number(),
		CustomerID: o.CustomerID(),
		ActorID:    o.CustomerID(),
		Status:     o.Status(),
		Total:      o.Totals().Total,
		OccurredAt: o.CreatedAt(),
	}
}

// NewStatusChangedEvent describes an accepted status change of o.
func NewStatusChangedEvent(o *order.Order, change order.StatusChange) OrderEvent {
	return OrderEvent{
		ID:         kernel.NewUUID(),
		Type:       OrderStatusChanged,
		OrderID:    o.ID(),
		Number:     o.Number(),
		CustomerID: o.CustomerID(),
		ActorID:    change.ActorID(),
		Status:     change.NewStatus(),
		Total:      o.Totals().Total,
		OccurredAt: change.OccurredAt(),
	}
}

// Notifier relays order events. Delivery is best effort: callers publish after
// their transaction has committed and a failure never undoes the write.
type Notifier interface {
	Notify(ctx context.Context, event OrderEvent) error
}
