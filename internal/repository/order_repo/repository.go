package order_repo

import (
	"context"

	"softglow/internal/domain"
	"softglow/internal/repository/outbox_repo"
)

type OrderRepository interface {
	// CreateOrderAndOutboxMessages persists the order snapshot, its items,
	// its status history and the pending outbox messages in one transaction.
	// A second order for the same gateway payment id fails with
	// domain.ErrDuplicatePayment.
	CreateOrderAndOutboxMessages(ctx context.Context, order *domain.Order, msgs []*outbox_repo.OutboxMessage) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByGatewayPaymentID(ctx context.Context, paymentID string) (*domain.Order, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	// UpdateStatusAndOutboxMessages writes the order's mutable fields, appends
	// the given new history entries and queues outbox messages, transactionally.
	UpdateStatusAndOutboxMessages(ctx context.Context, order *domain.Order, entries []domain.StatusEntry, msgs []*outbox_repo.OutboxMessage) error
}
