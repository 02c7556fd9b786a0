package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"softglow/internal/domain"
	"softglow/internal/repository/feedback_repo"
)

const uniqueViolation = "23505"

type pgFeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) feedback_repo.FeedbackRepository {
	return &pgFeedbackRepository{db: db}
}

const feedbackColumns = `id, customer_id, order_id, product_id, rating, comment, approved, created_at, updated_at`

func scanFeedback(row interface{ Scan(...interface{}) error }) (*domain.Feedback, error) {
	f := &domain.Feedback{}
	err := row.Scan(&f.ID, &f.CustomerID, &f.OrderID, &f.ProductID, &f.Rating, &f.Comment, &f.Approved, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *pgFeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	query := `INSERT INTO feedback (` + feedbackColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.CustomerID, f.OrderID, f.ProductID, f.Rating, f.Comment, f.Approved, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return feedback_repo.ErrAlreadyReviewed
		}
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *pgFeedbackRepository) GetByID(ctx context.Context, id string) (*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE id = $1`
	f, err := scanFeedback(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback by ID %s: %w", id, err)
	}
	return f, nil
}

func (r *pgFeedbackRepository) ListAll(ctx context.Context) ([]*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *pgFeedbackRepository) ListApprovedByProduct(ctx context.Context, productID string) ([]*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE product_id = $1 AND approved ORDER BY created_at DESC`
	return r.list(ctx, query, productID)
}

func (r *pgFeedbackRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var feedback []*domain.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		feedback = append(feedback, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return feedback, nil
}

func (r *pgFeedbackRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	query := `UPDATE feedback SET approved = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, approved)
	if err != nil {
		return fmt.Errorf("failed to set feedback approval: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrFeedbackNotFound
	}
	return nil
}
