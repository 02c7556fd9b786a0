package catalog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/product_repo"
	"softglow/internal/util"
)

var ErrProductNotFound = errors.New("product not found")

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price" validate:"required,min=0"`
	Quantity    int64  `json:"quantity" validate:"min=0"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price" validate:"min=0"`
	Quantity    int64  `json:"quantity" validate:"min=0"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Active      bool   `json:"active"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	Quantity    int64     `json:"quantity"`
	ImageURL    string    `json:"image_url"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListFilter struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

type CatalogService interface {
	ListProducts(ctx context.Context, filter ListFilter) ([]*ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
}

type catalogService struct {
	productRepo product_repo.ProductRepository
	logger      *zap.Logger
}

func NewCatalogService(productRepo product_repo.ProductRepository, logger *zap.Logger) CatalogService {
	return &catalogService{productRepo: productRepo, logger: logger}
}

const defaultPageSize = 20

func (s *catalogService) ListProducts(ctx context.Context, filter ListFilter) ([]*ProductResponse, error) {
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = defaultPageSize
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	products, err := s.productRepo.List(ctx, product_repo.ProductFilter{
		Category: filter.Category,
		Search:   filter.Search,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	})
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return mapProductsToResponse(products), nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return mapProductToResponse(product), nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	product, err := domain.NewProduct(util.GenerateUUID(), req.Name, req.Description, req.Category, req.Price, req.Quantity, req.ImageURL)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return nil, errors.New("failed to create product")
	}
	s.logger.Info("Product created", zap.String("product_id", product.ID), zap.String("name", product.Name))
	return mapProductToResponse(product), nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = req.Price
	product.Quantity = req.Quantity
	product.ImageURL = req.ImageURL
	product.Active = req.Active
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.String("product_id", id), zap.Error(err))
		return nil, errors.New("failed to update product")
	}
	return mapProductToResponse(product), nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return ErrProductNotFound
		}
		s.logger.Error("Failed to deactivate product", zap.String("product_id", id), zap.Error(err))
		return errors.New("failed to delete product")
	}
	s.logger.Info("Product deactivated", zap.String("product_id", id))
	return nil
}

func mapProductToResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		ImageURL:    p.ImageURL,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}

func mapProductsToResponse(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = mapProductToResponse(p)
	}
	return responses
}
