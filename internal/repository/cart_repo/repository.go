package cart_repo

import (
	"context"

	"softglow/internal/domain"
)

type CartRepository interface {
	// GetOrCreateByCustomerID returns the customer's cart, creating the empty
	// singleton row on first touch.
	GetOrCreateByCustomerID(ctx context.Context, customerID string) (*domain.Cart, error)
	GetByCustomerID(ctx context.Context, customerID string) (*domain.Cart, error)
	// Save replaces the cart's line items with the in-memory state.
	Save(ctx context.Context, cart *domain.Cart) error
	// Clear empties the cart; the cart row itself is never deleted.
	Clear(ctx context.Context, cartID string) error
}
