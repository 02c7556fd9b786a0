package domain

import (
	"errors"
	"time"
)

// Product prices are stored in the gateway's minor unit (paise), so checkout
// totals never go through floating point.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       int64
	Quantity    int64
	ImageURL    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProduct(id, name, description, category string, price, quantity int64, imageURL string) (*Product, error) {
	if id == "" || name == "" {
		return nil, errors.New("invalid product data")
	}
	if price < 0 || quantity < 0 {
		return nil, errors.New("price and quantity must be non-negative")
	}
	now := time.Now()
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		Quantity:    quantity,
		ImageURL:    imageURL,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (p *Product) InStock(quantity int64) bool {
	return p.Active && p.Quantity >= quantity
}
