package feedback_repo

import (
	"context"
	"errors"

	"softglow/internal/domain"
)

var ErrAlreadyReviewed = errors.New("feedback already submitted for this order item")

type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) error
	GetByID(ctx context.Context, id string) (*domain.Feedback, error)
	ListAll(ctx context.Context) ([]*domain.Feedback, error)
	ListApprovedByProduct(ctx context.Context, productID string) ([]*domain.Feedback, error)
	SetApproved(ctx context.Context, id string, approved bool) error
}
