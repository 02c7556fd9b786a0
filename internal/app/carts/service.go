package carts

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/cart_repo"
	"softglow/internal/repository/product_repo"
)

var (
	ErrProductUnavailable = errors.New("product is not available")
	ErrItemNotInCart      = errors.New("item not in cart")
)

type CartService interface {
	GetCart(ctx context.Context, customerID string) (*CartResponse, error)
	AddItem(ctx context.Context, customerID string, req *AddItemRequest) (*CartResponse, error)
	UpdateItem(ctx context.Context, customerID, productID string, quantity int64) (*CartResponse, error)
	RemoveItem(ctx context.Context, customerID, productID string) (*CartResponse, error)
	Clear(ctx context.Context, customerID string) (*CartResponse, error)
}

type cartService struct {
	cartRepo    cart_repo.CartRepository
	productRepo product_repo.ProductRepository
	logger      *zap.Logger
}

func NewCartService(cartRepo cart_repo.CartRepository, productRepo product_repo.ProductRepository, logger *zap.Logger) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo, logger: logger}
}

func (s *cartService) respond(ctx context.Context, cart *domain.Cart) (*CartResponse, error) {
	names := make(map[string]string, len(cart.Items))
	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		names[item.ProductID] = product.Name
	}
	return mapCartToResponse(cart, names), nil
}

func (s *cartService) GetCart(ctx context.Context, customerID string) (*CartResponse, error) {
	cart, err := s.cartRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.String("customer_id", customerID), zap.Error(err))
		return nil, err
	}
	return s.respond(ctx, cart)
}

func (s *cartService) AddItem(ctx context.Context, customerID string, req *AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, ErrProductUnavailable
	}
	if !product.InStock(req.Quantity) {
		return nil, domain.ErrInsufficientStock
	}

	cart, err := s.cartRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := cart.AddItem(product.ID, req.Quantity, product.Price); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("cart_id", cart.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Debug("Item added to cart",
		zap.String("cart_id", cart.ID),
		zap.String("product_id", product.ID),
		zap.Int64("quantity", req.Quantity))
	return s.respond(ctx, cart)
}

func (s *cartService) UpdateItem(ctx context.Context, customerID, productID string, quantity int64) (*CartResponse, error) {
	cart, err := s.cartRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := cart.SetItemQuantity(productID, quantity); err != nil {
		return nil, ErrItemNotInCart
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("cart_id", cart.ID), zap.Error(err))
		return nil, err
	}
	return s.respond(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, productID string) (*CartResponse, error) {
	return s.UpdateItem(ctx, customerID, productID, 0)
}

func (s *cartService) Clear(ctx context.Context, customerID string) (*CartResponse, error) {
	cart, err := s.cartRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	if err := s.cartRepo.Clear(ctx, cart.ID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("cart_id", cart.ID), zap.Error(err))
		return nil, err
	}
	return s.respond(ctx, cart)
}
