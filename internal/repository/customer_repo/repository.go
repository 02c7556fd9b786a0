package customer_repo

import (
	"context"

	"softglow/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	MarkEmailVerified(ctx context.Context, id string) error

	CreateOTP(ctx context.Context, otp *domain.EmailOTP) error
	GetLatestOTP(ctx context.Context, customerID string) (*domain.EmailOTP, error)
	DeleteOTPs(ctx context.Context, customerID string) error
}
