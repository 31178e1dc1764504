package commands

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// ClaimOrderCommandHandler lets a courier take a Ready order out for delivery.
//
// Claiming is idempotent: an order already OutForDelivery is returned as is,
// with no write, no audit entry and no notification.
//
// Example:
//
//	cmd, _ := NewClaimOrderCommand(courier, orderID)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidState) {
//	    // the order is not ready yet, or already delivered
//	}
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	handoff    services.DeliveryHandoff
	logger     *slog.Logger
}

func NewClaimOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier, logger *slog.Logger) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		handoff:    services.NewDeliveryHandoff(services.NewAccessPolicy()),
		logger:     logger.With("component", "claim_order"),
	}
}

func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
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

	change, changed, err := h.handoff.Claim(o, cmd.Courier(), time.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
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
