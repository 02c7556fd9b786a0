package carts

import (
	"time"

	"softglow/internal/domain"
)

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

type UpdateItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

type CartResponse struct {
	ID        string             `json:"id"`
	Items     []CartItemResponse `json:"items"`
	Subtotal  int64              `json:"subtotal"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func mapCartToResponse(cart *domain.Cart, names map[string]string) *CartResponse {
	resp := &CartResponse{
		ID:        cart.ID,
		Items:     make([]CartItemResponse, 0, len(cart.Items)),
		UpdatedAt: cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		lineTotal := item.UnitPrice * item.Quantity
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID: item.ProductID,
			Name:      names[item.ProductID],
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
		})
		resp.Subtotal += lineTotal
	}
	return resp
}
