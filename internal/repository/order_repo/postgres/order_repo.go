package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/order_repo"
	"softglow/internal/repository/outbox_repo"
)

const uniqueViolation = "23505"

type pgOrderRepository struct {
	db     *sql.DB
	outbox outbox_repo.OutboxRepository
	logger *zap.Logger
}

func NewOrderRepository(db *sql.DB, outbox outbox_repo.OutboxRepository, l *zap.Logger) order_repo.OrderRepository {
	return &pgOrderRepository{db: db, outbox: outbox, logger: l}
}

const orderColumns = `id, customer_id, order_number, total_amount, currency, status, payment_status,
	gateway_order_id, gateway_payment_id, gateway_signature,
	shipping_name, shipping_phone, shipping_line1, shipping_line2, shipping_city, shipping_state, shipping_postal_code, shipping_country,
	delivered_at, cancelled_at, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	o := &domain.Order{}
	var deliveredAt, cancelledAt sql.NullTime
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.OrderNumber, &o.TotalAmount, &o.Currency, &o.Status, &o.PaymentStatus,
		&o.GatewayOrderID, &o.GatewayPaymentID, &o.GatewaySignature,
		&o.Shipping.Name, &o.Shipping.Phone, &o.Shipping.Line1, &o.Shipping.Line2,
		&o.Shipping.City, &o.Shipping.State, &o.Shipping.PostalCode, &o.Shipping.Country,
		&deliveredAt, &cancelledAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if deliveredAt.Valid {
		o.DeliveredAt = &deliveredAt.Time
	}
	if cancelledAt.Valid {
		o.CancelledAt = &cancelledAt.Time
	}
	return o, nil
}

func (r *pgOrderRepository) CreateOrderAndOutboxMessages(ctx context.Context, order *domain.Order, msgs []*outbox_repo.OutboxMessage) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction for order creation", zap.String("order_id", order.ID), zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Panic during order creation transaction, rolling back", zap.String("order_id", order.ID))
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			if err = tx.Commit(); err != nil {
				r.logger.Error("Failed to commit order creation transaction", zap.String("order_id", order.ID), zap.Error(err))
				err = fmt.Errorf("failed to commit order creation: %w", err)
			}
		}
	}()

	orderQuery := `INSERT INTO orders (` + orderColumns + `) VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err = tx.ExecContext(ctx, orderQuery,
		order.ID, order.CustomerID, order.OrderNumber, order.TotalAmount, order.Currency, order.Status, order.PaymentStatus,
		order.GatewayOrderID, order.GatewayPaymentID, order.GatewaySignature,
		order.Shipping.Name, order.Shipping.Phone, order.Shipping.Line1, order.Shipping.Line2,
		order.Shipping.City, order.Shipping.State, order.Shipping.PostalCode, order.Shipping.Country,
		order.DeliveredAt, order.CancelledAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			err = domain.ErrDuplicatePayment
			return err
		}
		err = fmt.Errorf("tx failed to create order: %w", err)
		return err
	}

	for i, item := range order.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, position, product_id, name, unit_price, quantity) VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, i, item.ProductID, item.Name, item.UnitPrice, item.Quantity)
		if err != nil {
			err = fmt.Errorf("tx failed to create order item: %w", err)
			return err
		}
	}

	for _, entry := range order.History {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_status_history (order_id, status, note, created_at) VALUES ($1, $2, $3, $4)`,
			order.ID, entry.Status, entry.Note, entry.CreatedAt)
		if err != nil {
			err = fmt.Errorf("tx failed to create status history entry: %w", err)
			return err
		}
	}

	for _, msg := range msgs {
		if err = r.outbox.CreateMessageTx(ctx, tx, msg); err != nil {
			return err
		}
	}

	return err
}

func (r *pgOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		r.logger.Error("Failed to get order by ID", zap.String("order_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	if err := r.loadDetails(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *pgOrderRepository) GetByGatewayPaymentID(ctx context.Context, paymentID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE gateway_payment_id = $1`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by payment ID: %w", err)
	}
	if err := r.loadDetails(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *pgOrderRepository) ListByCustomerID(ctx context.Context, customerID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, customerID)
}

func (r *pgOrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *pgOrderRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query orders", zap.Error(err))
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for _, order := range orders {
		if err := r.loadDetails(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *pgOrderRepository) loadDetails(ctx context.Context, order *domain.Order) error {
	itemRows, err := r.db.QueryContext(ctx,
		`SELECT product_id, name, unit_price, quantity FROM order_items WHERE order_id = $1 ORDER BY position`, order.ID)
	if err != nil {
		return fmt.Errorf("failed to get order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item domain.OrderItem
		if err := itemRows.Scan(&item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item row: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err = itemRows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}

	historyRows, err := r.db.QueryContext(ctx,
		`SELECT status, note, created_at FROM order_status_history WHERE order_id = $1 ORDER BY id`, order.ID)
	if err != nil {
		return fmt.Errorf("failed to get order status history: %w", err)
	}
	defer historyRows.Close()
	for historyRows.Next() {
		var entry domain.StatusEntry
		if err := historyRows.Scan(&entry.Status, &entry.Note, &entry.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan status history row: %w", err)
		}
		order.History = append(order.History, entry)
	}
	if err = historyRows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}
	return nil
}

func (r *pgOrderRepository) UpdateStatusAndOutboxMessages(ctx context.Context, order *domain.Order, entries []domain.StatusEntry, msgs []*outbox_repo.OutboxMessage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `UPDATE orders SET status = $2, payment_status = $3, delivered_at = $4, cancelled_at = $5, updated_at = $6 WHERE id = $1`
	var res sql.Result
	res, err = tx.ExecContext(ctx, query, order.ID, order.Status, order.PaymentStatus, order.DeliveredAt, order.CancelledAt, order.UpdatedAt)
	if err != nil {
		err = fmt.Errorf("tx failed to update order %s: %w", order.ID, err)
		return err
	}
	var rowsAffected int64
	rowsAffected, err = res.RowsAffected()
	if err != nil {
		err = fmt.Errorf("failed to check update result: %w", err)
		return err
	}
	if rowsAffected == 0 {
		err = domain.ErrOrderNotFound
		return err
	}

	for _, entry := range entries {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_status_history (order_id, status, note, created_at) VALUES ($1, $2, $3, $4)`,
			order.ID, entry.Status, entry.Note, entry.CreatedAt)
		if err != nil {
			err = fmt.Errorf("tx failed to append status history: %w", err)
			return err
		}
	}

	for _, msg := range msgs {
		if err = r.outbox.CreateMessageTx(ctx, tx, msg); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Failed to commit order status update", zap.String("order_id", order.ID), zap.Error(err))
		return fmt.Errorf("failed to commit order status update: %w", err)
	}
	return nil
}
