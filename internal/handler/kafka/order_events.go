package kafka

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"softglow/internal/app/notifications"
	"softglow/internal/domain"
	"softglow/internal/events"
)

// OrderEventsHandler turns published order events into notification rows.
// Notification delivery is best-effort: a failure is logged and the
// message is still considered handled so the consumer keeps moving.
type OrderEventsHandler struct {
	notifications notifications.NotificationService
	logger        *zap.Logger
}

func NewOrderEventsHandler(n notifications.NotificationService, l *zap.Logger) *OrderEventsHandler {
	return &OrderEventsHandler{notifications: n, logger: l}
}

func (h *OrderEventsHandler) Handle(ctx context.Context, message []byte) error {
	var event events.OrderEvent
	if err := json.Unmarshal(message, &event); err != nil {
		h.logger.Error("Failed to decode order event", zap.Error(err))
		return nil
	}

	h.logger.Info("Processing order event",
		zap.String("type", event.Type),
		zap.String("order_id", event.OrderID),
		zap.String("order_number", event.OrderNumber))

	if event.CustomerTitle != "" {
		err := h.notifications.Notify(ctx, domain.PrincipalCustomer, event.CustomerID, event.CustomerTitle, event.CustomerMessage)
		if err != nil {
			h.logger.Error("Failed to notify customer",
				zap.String("order_id", event.OrderID),
				zap.String("customer_id", event.CustomerID),
				zap.Error(err))
		}
	}

	if event.NotifyAdmins && event.AdminTitle != "" {
		if err := h.notifications.NotifyAllAdmins(ctx, event.AdminTitle, event.AdminMessage); err != nil {
			h.logger.Error("Failed to notify admins",
				zap.String("order_id", event.OrderID),
				zap.Error(err))
		}
	}
	return nil
}
