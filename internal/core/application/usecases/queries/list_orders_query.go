package queries

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders with optional customer and status filters.
//
// Example:
//
//	query, err := NewListOrdersQuery(staff, nil, "Pronto")
//	if err != nil {
//	    return err // unknown status
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	actor      actor.Actor
	customerID *kernel.UUID
	statuses   []order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery parses the optional status filter; an empty string means any
// status and anything else must be an exact status value.
func NewListOrdersQuery(a actor.Actor, customerID *kernel.UUID, status string) (ListOrdersQuery, error) {
	if err := a.ID().Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	query := ListOrdersQuery{actor: a, guard: guard.NewConstructorGuard()}

	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		id := *customerID
		query.customerID = &id
	}

	if status = strings.TrimSpace(status); status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		query.statuses = []order.Status{parsed}
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() actor.Actor       { return q.actor }
func (q ListOrdersQuery) CustomerID() *kernel.UUID { return q.customerID }
func (q ListOrdersQuery) Statuses() []order.Status { return q.statuses }
