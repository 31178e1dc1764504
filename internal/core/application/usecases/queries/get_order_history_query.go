package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery reads the status audit trail of one order.
type GetOrderHistoryQuery struct {
	actor   actor.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(a actor.Actor, orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := errors.Join(a.ID().Validate(), orderID.Validate()); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{actor: a, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) Actor() actor.Actor   { return q.actor }
func (q GetOrderHistoryQuery) OrderID() kernel.UUID { return q.orderID }
