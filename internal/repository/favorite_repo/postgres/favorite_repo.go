package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"softglow/internal/domain"
	"softglow/internal/repository/favorite_repo"
)

const uniqueViolation = "23505"

type pgFavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) favorite_repo.FavoriteRepository {
	return &pgFavoriteRepository{db: db}
}

func (r *pgFavoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	query := `INSERT INTO favorites (id, customer_id, product_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.CustomerID, f.ProductID, f.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrFavoriteExists
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

func (r *pgFavoriteRepository) ListByCustomerID(ctx context.Context, customerID string) ([]*favorite_repo.FavoriteWithProduct, error) {
	query := `SELECT f.id, f.customer_id, f.product_id, f.created_at,
		p.id, p.name, p.description, p.category, p.price, p.quantity, p.image_url, p.active, p.created_at, p.updated_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.customer_id = $1
		ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*favorite_repo.FavoriteWithProduct
	for rows.Next() {
		fp := &favorite_repo.FavoriteWithProduct{}
		err := rows.Scan(
			&fp.Favorite.ID, &fp.Favorite.CustomerID, &fp.Favorite.ProductID, &fp.Favorite.CreatedAt,
			&fp.Product.ID, &fp.Product.Name, &fp.Product.Description, &fp.Product.Category,
			&fp.Product.Price, &fp.Product.Quantity, &fp.Product.ImageURL, &fp.Product.Active,
			&fp.Product.CreatedAt, &fp.Product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		favorites = append(favorites, fp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return favorites, nil
}

func (r *pgFavoriteRepository) Delete(ctx context.Context, customerID, productID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE customer_id = $1 AND product_id = $2`, customerID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
