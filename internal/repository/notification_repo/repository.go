package notification_repo

import (
	"context"

	"softglow/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, kind domain.PrincipalKind, recipientID string) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, kind domain.PrincipalKind, recipientID string) (int64, error)
	// MarkRead only touches the recipient's own row.
	MarkRead(ctx context.Context, id string, kind domain.PrincipalKind, recipientID string) error
	MarkAllRead(ctx context.Context, kind domain.PrincipalKind, recipientID string) error
}
