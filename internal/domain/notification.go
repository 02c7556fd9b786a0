package domain

import (
	"errors"
	"time"
)

// Notification rows are append-only; the only mutation is the read flag.
type Notification struct {
	ID            string
	RecipientKind PrincipalKind
	RecipientID   string
	Title         string
	Message       string
	Read          bool
	CreatedAt     time.Time
}

func NewNotification(id string, kind PrincipalKind, recipientID, title, message string) (*Notification, error) {
	if id == "" || recipientID == "" || message == "" {
		return nil, errors.New("invalid notification data")
	}
	return &Notification{
		ID:            id,
		RecipientKind: kind,
		RecipientID:   recipientID,
		Title:         title,
		Message:       message,
		CreatedAt:     time.Now(),
	}, nil
}

// OrderStatusMessages is the static customer-facing text for each status an
// admin can set. Keys must cover every enumerated status.
var OrderStatusMessages = map[OrderStatus]string{
	OrderStatusPending:    "Your order is pending confirmation.",
	OrderStatusConfirmed:  "Your order has been confirmed. Thank you for shopping with SoftGlow!",
	OrderStatusProcessing: "Your order is being prepared.",
	OrderStatusShipped:    "Good news! Your order has been shipped.",
	OrderStatusDelivered:  "Your order has been delivered. We hope you love it!",
	OrderStatusCompleted:  "Your order is complete. Thank you for shopping with SoftGlow!",
	OrderStatusCancelled:  "Your order has been cancelled. Any payment will be refunded.",
	OrderStatusRefunded:   "Your order has been refunded.",
	OrderStatusReturn:     "Your return request has been received.",
}
