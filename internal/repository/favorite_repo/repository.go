package favorite_repo

import (
	"context"

	"softglow/internal/domain"
)

// FavoriteWithProduct carries the joined product so listings do not need a
// second round trip per favorite.
type FavoriteWithProduct struct {
	Favorite domain.Favorite
	Product  domain.Product
}

type FavoriteRepository interface {
	// Create fails with domain.ErrFavoriteExists when the (customer, product)
	// pair already exists.
	Create(ctx context.Context, f *domain.Favorite) error
	ListByCustomerID(ctx context.Context, customerID string) ([]*FavoriteWithProduct, error)
	Delete(ctx context.Context, customerID, productID string) error
}
