package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"softglow/internal/domain"
	"softglow/internal/repository/notification_repo"
)

type pgNotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) notification_repo.NotificationRepository {
	return &pgNotificationRepository{db: db}
}

func (r *pgNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (id, recipient_kind, recipient_id, title, message, read, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, n.ID, n.RecipientKind, n.RecipientID, n.Title, n.Message, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *pgNotificationRepository) ListByRecipient(ctx context.Context, kind domain.PrincipalKind, recipientID string) ([]*domain.Notification, error) {
	query := `SELECT id, recipient_kind, recipient_id, title, message, read, created_at FROM notifications WHERE recipient_kind = $1 AND recipient_id = $2 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, kind, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n := &domain.Notification{}
		if err := rows.Scan(&n.ID, &n.RecipientKind, &n.RecipientID, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return notifications, nil
}

func (r *pgNotificationRepository) CountUnread(ctx context.Context, kind domain.PrincipalKind, recipientID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_kind = $1 AND recipient_id = $2 AND NOT read`
	if err := r.db.QueryRowContext(ctx, query, kind, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *pgNotificationRepository) MarkRead(ctx context.Context, id string, kind domain.PrincipalKind, recipientID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_kind = $2 AND recipient_id = $3`
	res, err := r.db.ExecContext(ctx, query, id, kind, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *pgNotificationRepository) MarkAllRead(ctx context.Context, kind domain.PrincipalKind, recipientID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE recipient_kind = $1 AND recipient_id = $2 AND NOT read`
	if _, err := r.db.ExecContext(ctx, query, kind, recipientID); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}
