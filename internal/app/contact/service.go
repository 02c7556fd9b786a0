package contact

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/contact_repo"
	"softglow/internal/util"
)

var ErrMessageNotFound = errors.New("contact message not found")

type SubmitRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactService interface {
	Submit(ctx context.Context, req *SubmitRequest) (*MessageResponse, error)
	ListAll(ctx context.Context) ([]*MessageResponse, error)
	Resolve(ctx context.Context, id string) (*MessageResponse, error)
}

type contactService struct {
	contactRepo contact_repo.ContactRepository
	logger      *zap.Logger
}

func NewContactService(contactRepo contact_repo.ContactRepository, logger *zap.Logger) ContactService {
	return &contactService{contactRepo: contactRepo, logger: logger}
}

func (s *contactService) Submit(ctx context.Context, req *SubmitRequest) (*MessageResponse, error) {
	message, err := domain.NewContactMessage(util.GenerateUUID(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Create(ctx, message); err != nil {
		s.logger.Error("Failed to save contact message", zap.Error(err))
		return nil, errors.New("failed to submit message")
	}
	s.logger.Info("Contact message received", zap.String("message_id", message.ID))
	return mapMessageToResponse(message), nil
}

func (s *contactService) ListAll(ctx context.Context) ([]*MessageResponse, error) {
	messages, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list contact messages", zap.Error(err))
		return nil, errors.New("internal server error")
	}
	responses := make([]*MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = mapMessageToResponse(m)
	}
	return responses, nil
}

func (s *contactService) Resolve(ctx context.Context, id string) (*MessageResponse, error) {
	message, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	message.Resolve()
	if err := s.contactRepo.UpdateStatus(ctx, message); err != nil {
		s.logger.Error("Failed to resolve contact message", zap.String("message_id", id), zap.Error(err))
		return nil, errors.New("failed to resolve message")
	}
	return mapMessageToResponse(message), nil
}

func mapMessageToResponse(m *domain.ContactMessage) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
	}
}
