package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/repository/feedback_repo"
	"softglow/internal/repository/outbox_repo"
)

type fakeFeedbackRepo struct {
	items map[string]*domain.Feedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{items: make(map[string]*domain.Feedback)}
}

func (r *fakeFeedbackRepo) Create(_ context.Context, f *domain.Feedback) error {
	for _, existing := range r.items {
		if existing.CustomerID == f.CustomerID && existing.OrderID == f.OrderID && existing.ProductID == f.ProductID {
			return feedback_repo.ErrAlreadyReviewed
		}
	}
	r.items[f.ID] = f
	return nil
}

func (r *fakeFeedbackRepo) GetByID(_ context.Context, id string) (*domain.Feedback, error) {
	f, ok := r.items[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	return f, nil
}

func (r *fakeFeedbackRepo) ListAll(_ context.Context) ([]*domain.Feedback, error) {
	var out []*domain.Feedback
	for _, f := range r.items {
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFeedbackRepo) ListApprovedByProduct(_ context.Context, productID string) ([]*domain.Feedback, error) {
	var out []*domain.Feedback
	for _, f := range r.items {
		if f.ProductID == productID && f.Approved {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) SetApproved(_ context.Context, id string, approved bool) error {
	f, ok := r.items[id]
	if !ok {
		return domain.ErrFeedbackNotFound
	}
	f.Approved = approved
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func (r *fakeOrderRepo) CreateOrderAndOutboxMessages(_ context.Context, order *domain.Order, _ []*outbox_repo.OutboxMessage) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) GetByGatewayPaymentID(_ context.Context, _ string) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListByCustomerID(_ context.Context, _ string) ([]*domain.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]*domain.Order, error) { return nil, nil }

func (r *fakeOrderRepo) UpdateStatusAndOutboxMessages(_ context.Context, order *domain.Order, _ []domain.StatusEntry, _ []*outbox_repo.OutboxMessage) error {
	r.orders[order.ID] = order
	return nil
}

func completedOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("o1", "c1",
		[]domain.OrderItem{{ProductID: "p1", Name: "Lavender Candle", UnitPrice: 100, Quantity: 2}},
		200, "INR", domain.ShippingAddress{Name: "Asha", Line1: "1 Main St"})
	require.NoError(t, err)
	require.NoError(t, order.SetStatus(domain.OrderStatusCompleted, ""))
	return order
}

func newTestService(t *testing.T) (FeedbackService, *fakeFeedbackRepo, *fakeOrderRepo) {
	t.Helper()
	feedbackRepo := newFakeFeedbackRepo()
	orderRepo := &fakeOrderRepo{orders: map[string]*domain.Order{"o1": completedOrder(t)}}
	return NewFeedbackService(feedbackRepo, orderRepo, zap.NewNop()), feedbackRepo, orderRepo
}

func TestSubmit(t *testing.T) {
	svc, repo, _ := newTestService(t)

	res, err := svc.Submit(context.Background(), "c1", &SubmitFeedbackRequest{
		OrderID: "o1", ProductID: "p1", Rating: 5, Comment: "Smells amazing",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Rating)
	assert.False(t, res.Approved)
	assert.Len(t, repo.items, 1)
}

func TestSubmit_WrongCustomer(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), "someone-else", &SubmitFeedbackRequest{
		OrderID: "o1", ProductID: "p1", Rating: 4,
	})
	assert.ErrorIs(t, err, ErrOrderNotEligible)
}

func TestSubmit_OrderNotCompleted(t *testing.T) {
	svc, _, orders := newTestService(t)
	require.NoError(t, orders.orders["o1"].SetStatus(domain.OrderStatusShipped, ""))

	_, err := svc.Submit(context.Background(), "c1", &SubmitFeedbackRequest{
		OrderID: "o1", ProductID: "p1", Rating: 4,
	})
	assert.ErrorIs(t, err, ErrOrderNotEligible)
}

func TestSubmit_ProductNotInOrder(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), "c1", &SubmitFeedbackRequest{
		OrderID: "o1", ProductID: "p99", Rating: 4,
	})
	assert.ErrorIs(t, err, ErrOrderNotEligible)
}

func TestSubmit_DuplicateRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), "c1", &SubmitFeedbackRequest{
		OrderID: "o1", ProductID: "p1", Rating: 5,
	})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "c1", &SubmitFeedbackRequest{
		OrderID: "o1", ProductID: "p1", Rating: 3,
	})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestApprovalGatesPublicListing(t *testing.T) {
	svc, repo, _ := newTestService(t)

	res, err := svc.Submit(context.Background(), "c1", &SubmitFeedbackRequest{
		OrderID: "o1", ProductID: "p1", Rating: 5, Comment: "Lovely",
	})
	require.NoError(t, err)

	public, err := svc.ListApprovedByProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, public)

	_, err = svc.SetApproved(context.Background(), res.ID, true)
	require.NoError(t, err)

	public, err = svc.ListApprovedByProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Lovely", public[0].Comment)

	assert.True(t, repo.items[res.ID].Approved)
}

func TestSetApproved_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SetApproved(context.Background(), "missing", true)
	assert.ErrorIs(t, err, ErrFeedbackNotFound)
}
