// Package queries contains the read side of the order lifecycle. Query handlers
// read through the repositories outside of any unit of work and apply the access
// policy to everything they return.
package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order on behalf of an actor.
type GetOrderQuery struct {
	actor   actor.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(a actor.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(a.ID().Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: a, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() actor.Actor   { return q.actor }
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }
