package commands

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies staff status changes.
//
// Checks run in this order: the order must exist, the status must be known, the
// actor must be staff or administrator and the order must not be terminal. The
// order update and its audit entry are committed in one transaction; a concurrent
// writer makes the loser fail with a retryable ConcurrencyConflictError.
type ChangeOrderStatusCommandHandler struct {
	uowFactory   UoWFactory
	notifier     ports.Notifier
	transitioner services.StatusTransitioner
	logger       *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory:   uowFactory,
		notifier:     notifier,
		transitioner: services.NewStatusTransitioner(services.NewAccessPolicy()),
		logger:       logger.With("component", "change_order_status"),
	}
}

// Handle changes the status and returns the updated order.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
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

	next, err := order.ParseStatus(cmd.Status())
	if err != nil {
		return nil, err
	}

	change, err := h.transitioner.Apply(o, next, cmd.Actor(), time.Now())
	if err != nil {
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
