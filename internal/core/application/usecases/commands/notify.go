package commands

import (
	"context"
	"log/slog"

	"restaurant/internal/core/ports"
)

// publish hands the event to the notifier after the transaction has committed.
// A failure is logged and otherwise ignored; the committed write stands.
func publish(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, event ports.OrderEvent) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, event); err != nil {
		logger.WarnContext(ctx, "order notification failed",
			"event_type", string(event.Type),
			"order_id", event.OrderID.String(),
			"error", err,
		)
	}
}
