package contact_repo

import (
	"context"

	"softglow/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
	GetByID(ctx context.Context, id string) (*domain.ContactMessage, error)
	ListAll(ctx context.Context) ([]*domain.ContactMessage, error)
	UpdateStatus(ctx context.Context, m *domain.ContactMessage) error
}
