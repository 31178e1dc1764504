package queries

import (
	"context"
	"log/slog"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// ListDeliverableOrdersQueryHandler builds the courier work list: every order that
// is Ready or OutForDelivery, newest first, with the customer's name.
//
// An order whose customer cannot be looked up is skipped and logged, like an order
// that failed to load. An unreachable directory still fails the whole request.
type ListDeliverableOrdersQueryHandler struct {
	orders    ports.OrderRepository
	customers ports.CustomerDirectory
	policy    services.AccessPolicy
	logger    *slog.Logger
}

func NewListDeliverableOrdersQueryHandler(
	orders ports.OrderRepository,
	customers ports.CustomerDirectory,
	logger *slog.Logger,
) ListDeliverableOrdersQueryHandler {
	return ListDeliverableOrdersQueryHandler{
		orders:    orders,
		customers: customers,
		policy:    services.NewAccessPolicy(),
		logger:    logger.With("component", "list_deliverable_orders"),
	}
}

func (h ListDeliverableOrdersQueryHandler) Handle(ctx context.Context, query ListDeliverableOrdersQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scope, err := h.policy.ScopeOrderList(query.Actor(), services.OrderScope{
		Statuses: []order.Status{order.Ready, order.OutForDelivery},
	})
	if err != nil {
		return nil, err
	}

	list, err := h.orders.List(ctx, ports.OrderFilter{CustomerID: scope.CustomerID, Statuses: scope.Statuses})
	if err != nil {
		return nil, err
	}
	logCorrupt(ctx, h.logger, list.Corrupt)

	views := make([]DeliveryView, 0, len(list.Orders))
	for _, o := range list.Orders {
		customer, lookupErr := h.customers.GetCustomer(ctx, o.CustomerID())
		if lookupErr != nil {
			if isUpstream(lookupErr) {
				return nil, lookupErr
			}
			h.logger.WarnContext(ctx, "skipping order without customer profile",
				"order_id", o.ID().String(),
				"customer_id", o.CustomerID().String(),
				"error", lookupErr,
			)
			continue
		}
		views = append(views, newDeliveryView(o, customer, false))
	}

	return views, nil
}

// GetDeliveryOrderQueryHandler returns the courier detail view of one order,
// including unit prices. Couriers asking for an order that is not Ready or
// OutForDelivery are denied.
type GetDeliveryOrderQueryHandler struct {
	orders    ports.OrderRepository
	customers ports.CustomerDirectory
	policy    services.AccessPolicy
}

func NewGetDeliveryOrderQueryHandler(
	orders ports.OrderRepository,
	customers ports.CustomerDirectory,
) GetDeliveryOrderQueryHandler {
	return GetDeliveryOrderQueryHandler{orders: orders, customers: customers, policy: services.NewAccessPolicy()}
}

func (h GetDeliveryOrderQueryHandler) Handle(ctx context.Context, query GetDeliveryOrderQuery) (DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return DeliveryView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return DeliveryView{}, err
	}

	if err = h.policy.Authorize(query.Actor(), services.OpReadOrder, services.ResourceOf(o)); err != nil {
		return DeliveryView{}, err
	}

	customer, err := h.customers.GetCustomer(ctx, o.CustomerID())
	if err != nil {
		return DeliveryView{}, err
	}

	return newDeliveryView(o, customer, true), nil
}
