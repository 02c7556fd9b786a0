package favorites

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/favorite_repo"
	"softglow/internal/repository/product_repo"
	"softglow/internal/util"
)

var (
	ErrAlreadyFavorite = errors.New("product already in favorites")
	ErrNotFavorite     = errors.New("product not in favorites")
)

type FavoriteResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	ImageURL  string    `json:"image_url"`
	Active    bool      `json:"active"`
	AddedAt   time.Time `json:"added_at"`
}

type FavoriteService interface {
	List(ctx context.Context, customerID string) ([]*FavoriteResponse, error)
	Add(ctx context.Context, customerID, productID string) (*FavoriteResponse, error)
	Remove(ctx context.Context, customerID, productID string) error
}

type favoriteService struct {
	favoriteRepo favorite_repo.FavoriteRepository
	productRepo  product_repo.ProductRepository
	logger       *zap.Logger
}

func NewFavoriteService(favoriteRepo favorite_repo.FavoriteRepository, productRepo product_repo.ProductRepository, logger *zap.Logger) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, productRepo: productRepo, logger: logger}
}

func (s *favoriteService) List(ctx context.Context, customerID string) ([]*FavoriteResponse, error) {
	favorites, err := s.favoriteRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to list favorites", zap.String("customer_id", customerID), zap.Error(err))
		return nil, errors.New("internal server error")
	}
	responses := make([]*FavoriteResponse, len(favorites))
	for i, fp := range favorites {
		responses[i] = &FavoriteResponse{
			ID:        fp.Favorite.ID,
			ProductID: fp.Product.ID,
			Name:      fp.Product.Name,
			Price:     fp.Product.Price,
			ImageURL:  fp.Product.ImageURL,
			Active:    fp.Product.Active,
			AddedAt:   fp.Favorite.CreatedAt,
		}
	}
	return responses, nil
}

func (s *favoriteService) Add(ctx context.Context, customerID, productID string) (*FavoriteResponse, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	favorite, err := domain.NewFavorite(util.GenerateUUID(), customerID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		if errors.Is(err, domain.ErrFavoriteExists) {
			return nil, ErrAlreadyFavorite
		}
		s.logger.Error("Failed to add favorite", zap.String("customer_id", customerID), zap.Error(err))
		return nil, errors.New("failed to add favorite")
	}

	return &FavoriteResponse{
		ID:        favorite.ID,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Active:    product.Active,
		AddedAt:   favorite.CreatedAt,
	}, nil
}

func (s *favoriteService) Remove(ctx context.Context, customerID, productID string) error {
	err := s.favoriteRepo.Delete(ctx, customerID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrFavoriteNotFound) {
			return ErrNotFavorite
		}
		s.logger.Error("Failed to remove favorite", zap.String("customer_id", customerID), zap.Error(err))
		return errors.New("failed to remove favorite")
	}
	return nil
}
