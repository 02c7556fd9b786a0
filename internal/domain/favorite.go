package domain

import (
	"errors"
	"time"
)

// Favorite joins a customer to a product; (customer, product) is unique.
type Favorite struct {
	ID         string
	CustomerID string
	ProductID  string
	CreatedAt  time.Time
}

func NewFavorite(id, customerID, productID string) (*Favorite, error) {
	if id == "" || customerID == "" || productID == "" {
		return nil, errors.New("invalid favorite data")
	}
	return &Favorite{
		ID:         id,
		CustomerID: customerID,
		ProductID:  productID,
		CreatedAt:  time.Now(),
	}, nil
}
