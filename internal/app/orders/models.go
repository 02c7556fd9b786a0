package orders

import (
	"time"

	"softglow/internal/domain"
)

type CreatePaymentResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id" validate:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	GatewaySignature string `json:"razorpay_signature" validate:"required"`
}

type VerifyPaymentResponse struct {
	Message string        `json:"message"`
	Order   *OrderSummary `json:"order"`
}

type OrderSummary struct {
	OrderNumber string              `json:"orderNumber"`
	TotalAmount int64               `json:"totalAmount"`
	Status      string              `json:"status"`
	OrderDate   time.Time           `json:"orderDate"`
	Items       []OrderItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}

type StatusEntryResponse struct {
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type ShippingAddressResponse struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type OrderResponse struct {
	ID            string                  `json:"id"`
	OrderNumber   string                  `json:"orderNumber"`
	CustomerID    string                  `json:"customer_id"`
	TotalAmount   int64                   `json:"totalAmount"`
	Currency      string                  `json:"currency"`
	Status        string                  `json:"status"`
	PaymentStatus string                  `json:"payment_status"`
	OrderDate     time.Time               `json:"orderDate"`
	Items         []OrderItemResponse     `json:"items"`
	History       []StatusEntryResponse   `json:"history"`
	Shipping      ShippingAddressResponse `json:"shipping"`
	DeliveredAt   *time.Time              `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time              `json:"cancelled_at,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

func mapItems(items []domain.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, len(items))
	for i, item := range items {
		out[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}
	return out
}

func mapOrderToResponse(o *domain.Order) *OrderResponse {
	history := make([]StatusEntryResponse, len(o.History))
	for i, entry := range o.History {
		history[i] = StatusEntryResponse{
			Status:    string(entry.Status),
			Note:      entry.Note,
			CreatedAt: entry.CreatedAt,
		}
	}
	return &OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerID:    o.CustomerID,
		TotalAmount:   o.TotalAmount,
		Currency:      o.Currency,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		OrderDate:     o.CreatedAt,
		Items:         mapItems(o.Items),
		History:       history,
		Shipping: ShippingAddressResponse{
			Name:       o.Shipping.Name,
			Phone:      o.Shipping.Phone,
			Line1:      o.Shipping.Line1,
			Line2:      o.Shipping.Line2,
			City:       o.Shipping.City,
			State:      o.Shipping.State,
			PostalCode: o.Shipping.PostalCode,
			Country:    o.Shipping.Country,
		},
		DeliveredAt: o.DeliveredAt,
		CancelledAt: o.CancelledAt,
	}
}

func mapOrderToSummary(o *domain.Order) *OrderSummary {
	return &OrderSummary{
		OrderNumber: o.OrderNumber,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		OrderDate:   o.CreatedAt,
		Items:       mapItems(o.Items),
	}
}

func mapOrdersToResponse(orders []*domain.Order) []*OrderResponse {
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = mapOrderToResponse(o)
	}
	return responses
}
