package queries

import (
	"context"
	"log/slog"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// ListOrdersQueryHandler lists the orders an actor may see, newest first.
//
// Customers always get only their own orders and are denied when they ask for
// another customer's. Couriers get Ready and OutForDelivery orders. Staff and
// administrators may filter freely.
//
// Stored orders that cannot be loaded are skipped and logged; the rest of the
// listing is still returned.
type ListOrdersQueryHandler struct {
	orders ports.OrderRepository
	policy services.AccessPolicy
	logger *slog.Logger
}

func NewListOrdersQueryHandler(orders ports.OrderRepository, logger *slog.Logger) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{
		orders: orders,
		policy: services.NewAccessPolicy(),
		logger: logger.With("component", "list_orders"),
	}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scope, err := h.policy.ScopeOrderList(query.Actor(), services.OrderScope{
		CustomerID: query.CustomerID(),
		Statuses:   query.Statuses(),
	})
	if err != nil {
		return nil, err
	}

	list, err := h.orders.List(ctx, ports.OrderFilter{CustomerID: scope.CustomerID, Statuses: scope.Statuses})
	if err != nil {
		return nil, err
	}

	logCorrupt(ctx, h.logger, list.Corrupt)
	return list.Orders, nil
}

func logCorrupt(ctx context.Context, logger *slog.Logger, corrupt []ports.CorruptOrder) {
	for _, c := range corrupt {
		logger.WarnContext(ctx, "skipping order that failed to load",
			"order_id", c.ID,
			"error", c.Err,
		)
	}
}
