package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var (
	ErrListDeliverableOrdersQueryIsNotConstructed = errors.New(
		"ListDeliverableOrdersQuery must be created via NewListDeliverableOrdersQuery constructor",
	)
	ErrGetDeliveryOrderQueryIsNotConstructed = errors.New(
		"GetDeliveryOrderQuery must be created via NewGetDeliveryOrderQuery constructor",
	)
)

// ListDeliverableOrdersQuery lists the orders a courier may pick up or is delivering.
type ListDeliverableOrdersQuery struct {
	actor actor.Actor

	guard guard.ConstructorGuard
}

func NewListDeliverableOrdersQuery(a actor.Actor) (ListDeliverableOrdersQuery, error) {
	if err := a.ID().Validate(); err != nil {
		return ListDeliverableOrdersQuery{}, err
	}
	return ListDeliverableOrdersQuery{actor: a, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDeliverableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListDeliverableOrdersQueryIsNotConstructed)
}

func (q ListDeliverableOrdersQuery) Actor() actor.Actor { return q.actor }

// GetDeliveryOrderQuery reads the courier detail view of one order.
type GetDeliveryOrderQuery struct {
	actor   actor.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryOrderQuery(a actor.Actor, orderID kernel.UUID) (GetDeliveryOrderQuery, error) {
	if err := errors.Join(a.ID().Validate(), orderID.Validate()); err != nil {
		return GetDeliveryOrderQuery{}, err
	}
	return GetDeliveryOrderQuery{actor: a, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryOrderQueryIsNotConstructed)
}

func (q GetDeliveryOrderQuery) Actor() actor.Actor   { return q.actor }
func (q GetDeliveryOrderQuery) OrderID() kernel.UUID { return q.orderID }
