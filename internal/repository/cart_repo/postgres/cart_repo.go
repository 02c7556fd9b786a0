package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/cart_repo"
	"softglow/internal/util"
)

type pgCartRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewCartRepository(db *sql.DB, l *zap.Logger) cart_repo.CartRepository {
	return &pgCartRepository{db: db, logger: l}
}

func (r *pgCartRepository) GetOrCreateByCustomerID(ctx context.Context, customerID string) (*domain.Cart, error) {
	cart, err := r.GetByCustomerID(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrCartNotFound) {
		return nil, err
	}

	cart, err = domain.NewCart(util.GenerateUUID(), customerID)
	if err != nil {
		return nil, err
	}
	// Concurrent first touches race on the unique customer_id; the loser
	// reads back the winner's row.
	query := `INSERT INTO carts (id, customer_id, created_at, updated_at) VALUES ($1, $2, $3, $4) ON CONFLICT (customer_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, cart.ID, cart.CustomerID, cart.CreatedAt, cart.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return r.GetByCustomerID(ctx, customerID)
}

func (r *pgCartRepository) GetByCustomerID(ctx context.Context, customerID string) (*domain.Cart, error) {
	cart := &domain.Cart{}
	query := `SELECT id, customer_id, created_at, updated_at FROM carts WHERE customer_id = $1`
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&cart.ID, &cart.CustomerID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		r.logger.Error("Failed to get cart by customer ID", zap.String("customer_id", customerID), zap.Error(err))
		return nil, fmt.Errorf("failed to get cart for customer %s: %w", customerID, err)
	}

	itemsQuery := `SELECT product_id, quantity, unit_price, added_at FROM cart_items WHERE cart_id = $1 ORDER BY added_at ASC`
	rows, err := r.db.QueryContext(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cart item row: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return cart, nil
}

func (r *pgCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return fmt.Errorf("tx failed to clear cart items: %w", err)
	}
	for _, item := range cart.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO cart_items (cart_id, product_id, quantity, unit_price, added_at) VALUES ($1, $2, $3, $4, $5)`,
			cart.ID, item.ProductID, item.Quantity, item.UnitPrice, item.AddedAt)
		if err != nil {
			return fmt.Errorf("tx failed to insert cart item: %w", err)
		}
	}
	if _, err = tx.ExecContext(ctx, `UPDATE carts SET updated_at = $2 WHERE id = $1`, cart.ID, cart.UpdatedAt); err != nil {
		return fmt.Errorf("tx failed to touch cart: %w", err)
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Failed to commit cart save", zap.String("cart_id", cart.ID), zap.Error(err))
		return fmt.Errorf("failed to commit cart save: %w", err)
	}
	return nil
}

func (r *pgCartRepository) Clear(ctx context.Context, cartID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.logger.Error("Failed to clear cart", zap.String("cart_id", cartID), zap.Error(err))
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}
