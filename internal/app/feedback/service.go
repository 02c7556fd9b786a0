package feedback

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/feedback_repo"
	"softglow/internal/repository/order_repo"
	"softglow/internal/util"
)

var (
	ErrOrderNotEligible = errors.New("feedback requires a completed order containing the product")
	ErrAlreadyReviewed  = errors.New("feedback already submitted for this order item")
	ErrFeedbackNotFound = errors.New("feedback not found")
)

type SubmitFeedbackRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

type FeedbackResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedbackService interface {
	Submit(ctx context.Context, customerID string, req *SubmitFeedbackRequest) (*FeedbackResponse, error)
	ListApprovedByProduct(ctx context.Context, productID string) ([]*FeedbackResponse, error)
	ListAll(ctx context.Context) ([]*FeedbackResponse, error)
	SetApproved(ctx context.Context, id string, approved bool) (*FeedbackResponse, error)
}

type feedbackService struct {
	feedbackRepo feedback_repo.FeedbackRepository
	orderRepo    order_repo.OrderRepository
	logger       *zap.Logger
}

func NewFeedbackService(feedbackRepo feedback_repo.FeedbackRepository, orderRepo order_repo.OrderRepository, logger *zap.Logger) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo, orderRepo: orderRepo, logger: logger}
}

func (s *feedbackService) Submit(ctx context.Context, customerID string, req *SubmitFeedbackRequest) (*FeedbackResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, ErrOrderNotEligible
		}
		return nil, err
	}
	if order.CustomerID != customerID || order.Status != domain.OrderStatusCompleted {
		return nil, ErrOrderNotEligible
	}
	contains := false
	for _, item := range order.Items {
		if item.ProductID == req.ProductID {
			contains = true
			break
		}
	}
	if !contains {
		return nil, ErrOrderNotEligible
	}

	fb, err := domain.NewFeedback(util.GenerateUUID(), customerID, req.OrderID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		if errors.Is(err, feedback_repo.ErrAlreadyReviewed) {
			return nil, ErrAlreadyReviewed
		}
		s.logger.Error("Failed to create feedback", zap.String("order_id", req.OrderID), zap.Error(err))
		return nil, errors.New("failed to submit feedback")
	}

	s.logger.Info("Feedback submitted",
		zap.String("feedback_id", fb.ID),
		zap.String("order_id", req.OrderID),
		zap.Int("rating", req.Rating))
	return mapFeedbackToResponse(fb), nil
}

func (s *feedbackService) ListApprovedByProduct(ctx context.Context, productID string) ([]*FeedbackResponse, error) {
	feedback, err := s.feedbackRepo.ListApprovedByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to list approved feedback", zap.String("product_id", productID), zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return mapFeedbackListToResponse(feedback), nil
}

func (s *feedbackService) ListAll(ctx context.Context) ([]*FeedbackResponse, error) {
	feedback, err := s.feedbackRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list feedback", zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return mapFeedbackListToResponse(feedback), nil
}

func (s *feedbackService) SetApproved(ctx context.Context, id string, approved bool) (*FeedbackResponse, error) {
	if err := s.feedbackRepo.SetApproved(ctx, id, approved); err != nil {
		if errors.Is(err, domain.ErrFeedbackNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	fb, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapFeedbackToResponse(fb), nil
}

func mapFeedbackToResponse(f *domain.Feedback) *FeedbackResponse {
	return &FeedbackResponse{
		ID:        f.ID,
		OrderID:   f.OrderID,
		ProductID: f.ProductID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		Approved:  f.Approved,
		CreatedAt: f.CreatedAt,
	}
}

func mapFeedbackListToResponse(feedback []*domain.Feedback) []*FeedbackResponse {
	responses := make([]*FeedbackResponse, len(feedback))
	for i, f := range feedback {
		responses[i] = mapFeedbackToResponse(f)
	}
	return responses
}
