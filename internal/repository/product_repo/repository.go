package product_repo

import (
	"context"

	"softglow/internal/domain"
)

type ProductFilter struct {
	Category        string
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	// Deactivate soft-deletes a product; order snapshots and cart references
	// stay valid.
	Deactivate(ctx context.Context, id string) error
	// DecrementStock is conditional: it fails with domain.ErrInsufficientStock
	// rather than driving quantity negative.
	DecrementStock(ctx context.Context, id string, quantity int64) error
}
