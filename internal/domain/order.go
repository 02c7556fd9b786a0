package domain

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
	OrderStatusReturn     OrderStatus = "RETURN"
)

// ValidOrderStatus reports whether s is one of the enumerated statuses. Admin
// transitions accept any of them, including backwards moves.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCompleted,
		OrderStatusCancelled, OrderStatusRefunded, OrderStatusReturn:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// ReturnWindow is measured from the moment the order reached COMPLETED.
const ReturnWindow = 24 * time.Hour

var (
	ErrCancelNotAllowed = errors.New("order can no longer be cancelled")
	ErrReturnNotAllowed = errors.New("only completed orders can be returned")
	ErrReturnWindowOver = errors.New("return window of 24 hours has passed")
)

// OrderItem is captured from the cart at checkout, not joined, so historical
// orders are immune to later product edits.
type OrderItem struct {
	ProductID string
	Name      string
	UnitPrice int64
	Quantity  int64
}

type StatusEntry struct {
	Status    OrderStatus
	Note      string
	CreatedAt time.Time
}

type ShippingAddress struct {
	Name       string
	Phone      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

type Order struct {
	ID               string
	CustomerID       string
	OrderNumber      string
	Items            []OrderItem
	TotalAmount      int64
	Currency         string
	Status           OrderStatus
	PaymentStatus    PaymentStatus
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	Shipping         ShippingAddress
	History          []StatusEntry
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GenerateOrderNumber builds a human-readable order number from a timestamp
// and a random suffix. Uniqueness is not guaranteed here; the gateway payment
// id is the idempotency key.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("SG-%d-%04d", now.UnixMilli(), rand.Intn(10000))
}

func NewOrder(id, customerID string, items []OrderItem, total int64, currency string, shipping ShippingAddress) (*Order, error) {
	if id == "" || customerID == "" {
		return nil, errors.New("invalid order data")
	}
	if len(items) == 0 {
		return nil, errors.New("order must have at least one item")
	}
	if total <= 0 {
		return nil, errors.New("order total must be positive")
	}
	now := time.Now()
	o := &Order{
		ID:          id,
		CustomerID:  customerID,
		OrderNumber: GenerateOrderNumber(now),
		Items:       items,
		TotalAmount: total,
		Currency:    currency,
		Status:      OrderStatusConfirmed,
		Shipping:    shipping,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	o.appendHistory(OrderStatusConfirmed, "Order placed", now)
	return o, nil
}

func (o *Order) appendHistory(status OrderStatus, note string, at time.Time) {
	o.History = append(o.History, StatusEntry{Status: status, Note: note, CreatedAt: at})
}

// SetStatus applies an admin transition. Any enumerated status is accepted,
// including moves backwards; every call appends a history entry.
func (o *Order) SetStatus(status OrderStatus, note string) error {
	if !ValidOrderStatus(status) {
		return fmt.Errorf("unknown order status: %s", status)
	}
	now := time.Now()
	o.Status = status
	o.UpdatedAt = now
	if status == OrderStatusDelivered && o.DeliveredAt == nil {
		o.DeliveredAt = &now
	}
	o.appendHistory(status, note, now)
	return nil
}

// Cancel is the customer-facing cancel. It is rejected once the order is
// completed or already cancelled.
func (o *Order) Cancel(note string) error {
	if o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled {
		return ErrCancelNotAllowed
	}
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.appendHistory(OrderStatusCancelled, note, now)
	return nil
}

// completedAt returns the most recent COMPLETED history timestamp, falling
// back to the delivery date when no such entry exists.
func (o *Order) completedAt() (time.Time, bool) {
	for i := len(o.History) - 1; i >= 0; i-- {
		if o.History[i].Status == OrderStatusCompleted {
			return o.History[i].CreatedAt, true
		}
	}
	if o.DeliveredAt != nil {
		return *o.DeliveredAt, true
	}
	return time.Time{}, false
}

// RequestReturn is the customer-facing return. Only a COMPLETED order within
// ReturnWindow of its completion is eligible.
func (o *Order) RequestReturn(note string, now time.Time) error {
	if o.Status != OrderStatusCompleted {
		return ErrReturnNotAllowed
	}
	completed, ok := o.completedAt()
	if !ok || now.Sub(completed) > ReturnWindow {
		return ErrReturnWindowOver
	}
	o.Status = OrderStatusReturn
	o.UpdatedAt = now
	o.appendHistory(OrderStatusReturn, note, now)
	return nil
}
