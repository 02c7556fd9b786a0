package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/product_repo"
)

type fakeProductRepo struct {
	products   map[string]*domain.Product
	lastFilter product_repo.ProductFilter
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*domain.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) List(_ context.Context, filter product_repo.ProductFilter) ([]*domain.Product, error) {
	r.lastFilter = filter
	var out []*domain.Product
	for _, p := range r.products {
		if p.Active || filter.IncludeInactive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id string) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Active = false
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, _ string, _ int64) error { return nil }

func TestCreateAndGetProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewCatalogService(repo, zap.NewNop())

	created, err := svc.CreateProduct(context.Background(), &CreateProductRequest{
		Name: "Lavender Candle", Category: "candles", Price: 100, Quantity: 10,
	})
	require.NoError(t, err)
	assert.True(t, created.Active)

	got, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lavender Candle", got.Name)
	assert.Equal(t, int64(100), got.Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := NewCatalogService(newFakeProductRepo(), zap.NewNop())

	_, err := svc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProducts_Pagination(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewCatalogService(repo, zap.NewNop())

	_, err := svc.ListProducts(context.Background(), ListFilter{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastFilter.Limit)
	assert.Equal(t, 20, repo.lastFilter.Offset)

	// Out-of-range sizes fall back to the default.
	_, err = svc.ListProducts(context.Background(), ListFilter{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)
}

func TestDeleteProduct_SoftDeletes(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewCatalogService(repo, zap.NewNop())

	created, err := svc.CreateProduct(context.Background(), &CreateProductRequest{
		Name: "Lavender Candle", Price: 100, Quantity: 10,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID))

	// The row survives as inactive; it is only hidden from listings.
	assert.False(t, repo.products[created.ID].Active)

	got, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestUpdateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewCatalogService(repo, zap.NewNop())

	created, err := svc.CreateProduct(context.Background(), &CreateProductRequest{
		Name: "Lavender Candle", Price: 100, Quantity: 10,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), created.ID, &UpdateProductRequest{
		Name: "Lavender Candle XL", Price: 150, Quantity: 5, Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lavender Candle XL", updated.Name)
	assert.Equal(t, int64(150), updated.Price)
}
