package queries

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// GetOrderQueryHandler returns an order if the actor may read it: customers their
// own orders, staff and administrators any order, couriers only orders that are
// Ready or OutForDelivery.
type GetOrderQueryHandler struct {
	orders ports.OrderRepository
	policy services.AccessPolicy
}

func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, policy: services.NewAccessPolicy()}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(query.Actor(), services.OpReadOrder, services.ResourceOf(o)); err != nil {
		return nil, err
	}

	return o, nil
}
