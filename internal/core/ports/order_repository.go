package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderFilter restricts List. A nil CustomerID and an empty Statuses slice both mean
// "no restriction".
type OrderFilter struct {
	CustomerID *kernel.UUID
	Statuses   []order.Status
}

// CorruptOrder is a stored order List could not turn back into an aggregate.
type CorruptOrder struct {
	ID  string
	Err error
}

// OrderList is the result of List. Orders are newest first by creation time.
// Corrupt holds the records that failed to load; they are reported, not hidden,
// and do not prevent the rest from being returned.
type OrderList struct {
	Orders  []*order.Order
	Corrupt []CorruptOrder
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. The order must be valid and not exist yet.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order back with a compare-and-swap on the version it was
	// loaded at. When another writer got there first it returns
	// errs.ConcurrencyConflictError and nothing is written; the caller may retry
	// the whole operation with a fresh copy.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns the orders matching filter, newest first.
	List(ctx context.Context, filter OrderFilter) (OrderList, error)
}
