package carts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/product_repo"
)

type fakeCartRepo struct {
	carts map[string]*domain.Cart
}

func (r *fakeCartRepo) GetOrCreateByCustomerID(_ context.Context, customerID string) (*domain.Cart, error) {
	if cart, ok := r.carts[customerID]; ok {
		return cart, nil
	}
	cart, _ := domain.NewCart("cart-"+customerID, customerID)
	r.carts[customerID] = cart
	return cart, nil
}

func (r *fakeCartRepo) GetByCustomerID(_ context.Context, customerID string) (*domain.Cart, error) {
	cart, ok := r.carts[customerID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return cart, nil
}

func (r *fakeCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	r.carts[cart.CustomerID] = cart
	return nil
}

func (r *fakeCartRepo) Clear(_ context.Context, cartID string) error {
	for _, cart := range r.carts {
		if cart.ID == cartID {
			cart.Clear()
		}
	}
	return nil
}

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) error { return nil }

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) List(_ context.Context, _ product_repo.ProductFilter) ([]*domain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, _ *domain.Product) error         { return nil }
func (r *fakeProductRepo) Deactivate(_ context.Context, _ string) error              { return nil }
func (r *fakeProductRepo) DecrementStock(_ context.Context, _ string, _ int64) error { return nil }

func newTestService(t *testing.T) (CartService, *fakeProductRepo) {
	t.Helper()

	active, err := domain.NewProduct("p1", "Lavender Candle", "", "candles", 100, 10, "")
	require.NoError(t, err)
	inactive, err := domain.NewProduct("p2", "Retired Candle", "", "candles", 50, 10, "")
	require.NoError(t, err)
	inactive.Active = false

	products := &fakeProductRepo{products: map[string]*domain.Product{"p1": active, "p2": inactive}}
	carts := &fakeCartRepo{carts: make(map[string]*domain.Cart)}
	return NewCartService(carts, products, zap.NewNop()), products
}

func TestGetCart_CreatesEmptyCart(t *testing.T) {
	svc, _ := newTestService(t)

	cart, err := svc.GetCart(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, int64(0), cart.Subtotal)
}

func TestAddItem(t *testing.T) {
	svc, _ := newTestService(t)

	cart, err := svc.AddItem(context.Background(), "c1", &AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Lavender Candle", cart.Items[0].Name)
	assert.Equal(t, int64(200), cart.Items[0].LineTotal)
	assert.Equal(t, int64(200), cart.Subtotal)
}

func TestAddItem_MergesLines(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), "c1", &AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), "c1", &AddItemRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(5), cart.Items[0].Quantity)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), "c1", &AddItemRequest{ProductID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAddItem_InactiveProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), "c1", &AddItemRequest{ProductID: "p2", Quantity: 1})
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestAddItem_InsufficientStock(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), "c1", &AddItemRequest{ProductID: "p1", Quantity: 100})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestUpdateItem_ZeroRemoves(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), "c1", &AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	cart, err := svc.UpdateItem(context.Background(), "c1", "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestUpdateItem_NotInCart(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateItem(context.Background(), "c1", "p1", 3)
	assert.ErrorIs(t, err, ErrItemNotInCart)
}

func TestClear(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), "c1", &AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	cart, err := svc.Clear(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
