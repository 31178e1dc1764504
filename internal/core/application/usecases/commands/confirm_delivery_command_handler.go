package commands

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// ConfirmDeliveryCommandHandler marks an order Delivered once the courier presents
// the last four digits of the customer's phone.
//
// The phone is read from the customer directory on every call; the code itself is
// never stored. The status is checked before the code, so a Ready order fails with
// InvalidStateError even when the code is right.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
	customers  ports.CustomerDirectory
	notifier   ports.Notifier
	handoff    services.DeliveryHandoff
	logger     *slog.Logger
}

func NewConfirmDeliveryCommandHandler(
	uowFactory UoWFactory,
	customers ports.CustomerDirectory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		customers:  customers,
		notifier:   notifier,
		handoff:    services.NewDeliveryHandoff(services.NewAccessPolicy()),
		logger:     logger.With("component", "confirm_delivery"),
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	customer, err := h.customers.GetCustomer(ctx, o.CustomerID())
	if err != nil {
		return nil, err
	}

	change, err := h.handoff.Confirm(o, cmd.Courier(), customer.Phone, cmd.Code(), time.Now())
	if err != nil {
		h.logger.InfoContext(ctx, "delivery confirmation rejected",
			"order_id", o.ID().String(),
			"courier_id", cmd.Courier().ID().String(),
			"error", err,
		)
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.StatusHistoryRepository().Append(ctx, change); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.notifier, h.logger, ports.NewStatusChangedEvent(o, change))
	return o, nil
}
