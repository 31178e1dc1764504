package commands

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders.
//
// The handler:
//   - checks that the actor is the customer the order is for
//   - snapshots the chosen address from the customer directory
//   - prices every item against the current catalog
//   - stores the Pending order and publishes order.placed
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, customers, notifier, logger)
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Println(o.Number(), o.Totals().Total)
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.ProductCatalog
	customers  ports.CustomerDirectory
	notifier   ports.Notifier
	policy     services.AccessPolicy
	pricing    services.PricingCalculator
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.ProductCatalog,
	customers ports.CustomerDirectory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		customers:  customers,
		notifier:   notifier,
		policy:     services.NewAccessPolicy(),
		pricing:    services.NewPricingCalculator(),
		logger:     logger.With("component", "create_order"),
	}
}

// Handle places the order and returns it.
//
// Errors:
//   - PermissionDeniedError when the actor is not the customer
//   - ObjectNotFoundError for an unknown customer, product or address index
//   - validation errors from pricing (missing price, negative adjustments)
//   - UpstreamUnavailableError when a collaborator cannot be reached
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Actor(), services.OpCreateOrder, services.Resource{OwnerID: cmd.CustomerID()}); err != nil {
		return nil, err
	}

	customer, err := h.customers.GetCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}
	if cmd.AddressIndex() >= len(customer.Addresses) {
		return nil, errs.NewObjectNotFoundError("address index", cmd.AddressIndex())
	}
	address := customer.Addresses[cmd.AddressIndex()]

	requests := make([]services.PriceRequest, 0, len(cmd.Items()))
	for _, item := range cmd.Items() {
		product, productErr := h.catalog.GetProduct(ctx, item.ProductID)
		if productErr != nil {
			return nil, productErr
		}
		requests = append(requests, services.PriceRequest{Product: product, Quantity: item.Quantity})
	}

	quote, err := h.pricing.Quote(requests, cmd.DeliveryFee(), cmd.Discount())
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), address, quote.Items, quote.Totals, cmd.Details(), time.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.notifier, h.logger, ports.NewOrderPlacedEvent(o))
	return o, nil
}
