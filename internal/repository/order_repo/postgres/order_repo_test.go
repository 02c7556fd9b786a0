package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/outbox_repo"
	postgres_outbox "softglow/internal/repository/outbox_repo/postgres"
)

// stubDriver executes every statement successfully; opening it with the
// "commit=fail" DSN makes Commit return an error so commit handling can be
// tested without Postgres.
type stubDriver struct{}

func (stubDriver) Open(dsn string) (driver.Conn, error) {
	return &stubConn{failCommit: dsn == "commit=fail"}, nil
}

type stubConn struct {
	failCommit bool
}

var executedQueries []string

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return &stubStmt{query: query}, nil
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return stubTx{fail: c.failCommit}, nil
}

type stubStmt struct {
	query string
}

func (s *stubStmt) Close() error  { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	executedQueries = append(executedQueries, s.query)
	return driver.RowsAffected(1), nil
}

func (s *stubStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errors.New("queries not supported")
}

type stubTx struct {
	fail bool
}

func (t stubTx) Commit() error {
	if t.fail {
		return errors.New("commit refused")
	}
	return nil
}

func (t stubTx) Rollback() error { return nil }

func init() {
	sql.Register("orderstub", stubDriver{})
}

func newStubRepo(t *testing.T, dsn string) (*sql.DB, *pgOrderRepository) {
	t.Helper()
	db, err := sql.Open("orderstub", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := zap.NewNop()
	repo := NewOrderRepository(db, postgres_outbox.NewOutboxRepository(db, logger), logger)
	return db, repo.(*pgOrderRepository)
}

func testOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("o1", "c1",
		[]domain.OrderItem{{ProductID: "p1", Name: "Lavender Dusk", UnitPrice: 24900, Quantity: 2}},
		49800, "INR",
		domain.ShippingAddress{
			Name: "Asha Rao", Phone: "9999999999",
			Line1: "12 Rose Street", City: "Pune", State: "MH",
			PostalCode: "411001", Country: "India",
		})
	require.NoError(t, err)
	return order
}

func testOutboxMessage() *outbox_repo.OutboxMessage {
	return &outbox_repo.OutboxMessage{
		ID:        "m1",
		Topic:     "order_events",
		Key:       "o1",
		Payload:   []byte(`{"type":"order.placed"}`),
		Status:    outbox_repo.StatusPending,
		CreatedAt: time.Now(),
	}
}

func TestCreateOrderAndOutboxMessages_CommitErrorSurfaces(t *testing.T) {
	_, repo := newStubRepo(t, "commit=fail")

	err := repo.CreateOrderAndOutboxMessages(context.Background(), testOrder(t),
		[]*outbox_repo.OutboxMessage{testOutboxMessage()})

	require.Error(t, err, "a failed commit must surface to the caller")
	assert.Contains(t, err.Error(), "commit")
}

func TestCreateOrderAndOutboxMessages_WritesOutboxInSameTx(t *testing.T) {
	executedQueries = nil
	_, repo := newStubRepo(t, "")

	err := repo.CreateOrderAndOutboxMessages(context.Background(), testOrder(t),
		[]*outbox_repo.OutboxMessage{testOutboxMessage()})
	require.NoError(t, err)

	var sawOutboxInsert bool
	for _, q := range executedQueries {
		if strings.Contains(q, "INSERT INTO outbox_messages") {
			sawOutboxInsert = true
		}
	}
	assert.True(t, sawOutboxInsert, "outbox message must be written inside the order transaction")
}

func TestUpdateStatusAndOutboxMessages_CommitErrorSurfaces(t *testing.T) {
	_, repo := newStubRepo(t, "commit=fail")
	order := testOrder(t)

	err := repo.UpdateStatusAndOutboxMessages(context.Background(), order,
		[]domain.StatusEntry{{Status: domain.OrderStatusShipped, Note: "Order shipped", CreatedAt: time.Now()}},
		[]*outbox_repo.OutboxMessage{testOutboxMessage()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit")
}
