package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"softglow/internal/domain"
	"softglow/internal/repository/contact_repo"
)

type pgContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) contact_repo.ContactRepository {
	return &pgContactRepository{db: db}
}

const contactColumns = `id, name, email, subject, message, status, created_at, updated_at`

func (r *pgContactRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	query := `INSERT INTO contact_messages (` + contactColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Email, m.Subject, m.Message, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

func (r *pgContactRepository) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	m := &domain.ContactMessage{}
	query := `SELECT ` + contactColumns + ` FROM contact_messages WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact message by ID %s: %w", id, err)
	}
	return m, nil
}

func (r *pgContactRepository) ListAll(ctx context.Context) ([]*domain.ContactMessage, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_messages ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []*domain.ContactMessage
	for rows.Next() {
		m := &domain.ContactMessage{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return messages, nil
}

func (r *pgContactRepository) UpdateStatus(ctx context.Context, m *domain.ContactMessage) error {
	query := `UPDATE contact_messages SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, m.ID, m.Status, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update contact message %s: %w", m.ID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}
