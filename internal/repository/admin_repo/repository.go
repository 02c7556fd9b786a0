package admin_repo

import (
	"context"

	"softglow/internal/domain"
)

type AdminRepository interface {
	Create(ctx context.Context, a *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	// ListIDs feeds the notify-every-admin fan-out.
	ListIDs(ctx context.Context) ([]string, error)
}
