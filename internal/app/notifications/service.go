package notifications

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/admin_repo"
	"softglow/internal/repository/notification_repo"
	"softglow/internal/util"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationService interface {
	// Notify is best-effort by contract: callers log failures and move on.
	Notify(ctx context.Context, kind domain.PrincipalKind, recipientID, title, message string) error
	// NotifyAllAdmins fans one message out to every admin; a failure for one
	// admin does not stop the rest.
	NotifyAllAdmins(ctx context.Context, title, message string) error
	List(ctx context.Context, p domain.Principal) ([]*NotificationResponse, error)
	UnreadCount(ctx context.Context, p domain.Principal) (int64, error)
	MarkRead(ctx context.Context, p domain.Principal, id string) error
	MarkAllRead(ctx context.Context, p domain.Principal) error
}

type notificationService struct {
	notificationRepo notification_repo.NotificationRepository
	adminRepo        admin_repo.AdminRepository
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo notification_repo.NotificationRepository,
	adminRepo admin_repo.AdminRepository,
	logger *zap.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		adminRepo:        adminRepo,
		logger:           logger,
	}
}

func (s *notificationService) Notify(ctx context.Context, kind domain.PrincipalKind, recipientID, title, message string) error {
	n, err := domain.NewNotification(util.GenerateUUID(), kind, recipientID, title, message)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error("Failed to create notification",
			zap.String("recipient_id", recipientID),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *notificationService) NotifyAllAdmins(ctx context.Context, title, message string) error {
	adminIDs, err := s.adminRepo.ListIDs(ctx)
	if err != nil {
		s.logger.Error("Failed to list admins for notification fan-out", zap.Error(err))
		return err
	}
	for _, adminID := range adminIDs {
		if err := s.Notify(ctx, domain.PrincipalAdmin, adminID, title, message); err != nil {
			s.logger.Error("Failed to notify admin",
				zap.String("admin_id", adminID),
				zap.Error(err))
		}
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, p domain.Principal) ([]*NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, p.Kind, p.ID)
	if err != nil {
		s.logger.Error("Failed to list notifications", zap.String("recipient_id", p.ID), zap.Error(err))
		return nil, errors.New("internal server error")
	}
	responses := make([]*NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = &NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	return responses, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, p domain.Principal) (int64, error) {
	count, err := s.notificationRepo.CountUnread(ctx, p.Kind, p.ID)
	if err != nil {
		s.logger.Error("Failed to count unread notifications", zap.String("recipient_id", p.ID), zap.Error(err))
		return 0, errors.New("internal server error")
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, p domain.Principal, id string) error {
	err := s.notificationRepo.MarkRead(ctx, id, p.Kind, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, p domain.Principal) error {
	return s.notificationRepo.MarkAllRead(ctx, p.Kind, p.ID)
}
