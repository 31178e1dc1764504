package queries

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// GetOrderHistoryQueryHandler returns the audit entries of an order, newest first.
// Only staff and administrators may read history. The order must exist.
type GetOrderHistoryQueryHandler struct {
	orders  ports.OrderRepository
	history ports.StatusHistoryRepository
	policy  services.AccessPolicy
}

func NewGetOrderHistoryQueryHandler(
	orders ports.OrderRepository,
	history ports.StatusHistoryRepository,
) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{orders: orders, history: history, policy: services.NewAccessPolicy()}
}

func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]order.StatusChange, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(query.Actor(), services.OpViewHistory, services.ResourceOf(o)); err != nil {
		return nil, err
	}

	return h.history.ListByOrder(ctx, o.ID())
}
