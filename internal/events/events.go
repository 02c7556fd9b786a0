// Package events defines the payloads carried through the outbox to Kafka.
// The in-service order-events consumer and the external mail pipeline both
// decode these.
package events

const (
	TypeOrderPlaced          = "order.placed"
	TypeOrderStatusChanged   = "order.status_changed"
	TypeOrderCancelled       = "order.cancelled"
	TypeOrderReturnRequested = "order.return_requested"
)

// OrderEvent describes an order transition. The consumer materializes a
// customer notification from CustomerMessage and, when NotifyAdmins is set,
// fans AdminMessage out to every admin.
type OrderEvent struct {
	Type            string `json:"type"`
	OrderID         string `json:"order_id"`
	OrderNumber     string `json:"order_number"`
	CustomerID      string `json:"customer_id"`
	Status          string `json:"status"`
	CustomerTitle   string `json:"customer_title,omitempty"`
	CustomerMessage string `json:"customer_message,omitempty"`
	AdminTitle      string `json:"admin_title,omitempty"`
	AdminMessage    string `json:"admin_message,omitempty"`
	NotifyAdmins    bool   `json:"notify_admins"`
}

// EmailEvent is consumed by the external transactional-email pipeline.
type EmailEvent struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data,omitempty"`
}
