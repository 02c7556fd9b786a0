package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"softglow/internal/domain"
)

type fakeNotificationRepo struct {
	created []*domain.Notification
	readIDs []string
	failFor string
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if r.failFor != "" && n.RecipientID == r.failFor {
		return errors.New("insert failed")
	}
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(_ context.Context, kind domain.PrincipalKind, recipientID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.created {
		if n.RecipientKind == kind && n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, kind domain.PrincipalKind, recipientID string) (int64, error) {
	var count int64
	for _, n := range r.created {
		if n.RecipientKind == kind && n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string, kind domain.PrincipalKind, recipientID string) error {
	for _, n := range r.created {
		if n.ID == id && n.RecipientKind == kind && n.RecipientID == recipientID {
			n.Read = true
			r.readIDs = append(r.readIDs, id)
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, kind domain.PrincipalKind, recipientID string) error {
	for _, n := range r.created {
		if n.RecipientKind == kind && n.RecipientID == recipientID {
			n.Read = true
		}
	}
	return nil
}

type fakeAdminRepo struct {
	ids []string
}

func (r *fakeAdminRepo) Create(_ context.Context, _ *domain.Admin) error { return nil }

func (r *fakeAdminRepo) GetByID(_ context.Context, _ string) (*domain.Admin, error) {
	return nil, domain.ErrAdminNotFound
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, _ string) (*domain.Admin, error) {
	return nil, domain.ErrAdminNotFound
}

func (r *fakeAdminRepo) ListIDs(_ context.Context) ([]string, error) {
	return r.ids, nil
}

func TestNotify(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, &fakeAdminRepo{}, zap.NewNop())

	err := svc.Notify(context.Background(), domain.PrincipalCustomer, "c1", "Order update", "Your order shipped.")
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, domain.PrincipalCustomer, repo.created[0].RecipientKind)
	assert.Equal(t, "Order update", repo.created[0].Title)
	assert.False(t, repo.created[0].Read)
}

func TestNotifyAllAdmins_FanOut(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, &fakeAdminRepo{ids: []string{"a1", "a2", "a3"}}, zap.NewNop())

	require.NoError(t, svc.NotifyAllAdmins(context.Background(), "New order", "Order SG-1 placed."))
	assert.Len(t, repo.created, 3)
}

func TestNotifyAllAdmins_OneFailureDoesNotStopRest(t *testing.T) {
	repo := &fakeNotificationRepo{failFor: "a2"}
	svc := NewNotificationService(repo, &fakeAdminRepo{ids: []string{"a1", "a2", "a3"}}, zap.NewNop())

	require.NoError(t, svc.NotifyAllAdmins(context.Background(), "New order", "Order SG-1 placed."))
	assert.Len(t, repo.created, 2)
}

func TestListAndUnreadScopedToPrincipal(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, &fakeAdminRepo{}, zap.NewNop())

	require.NoError(t, svc.Notify(context.Background(), domain.PrincipalCustomer, "c1", "A", "a"))
	require.NoError(t, svc.Notify(context.Background(), domain.PrincipalCustomer, "c2", "B", "b"))
	require.NoError(t, svc.Notify(context.Background(), domain.PrincipalAdmin, "c1", "C", "c"))

	list, err := svc.List(context.Background(), domain.Principal{Kind: domain.PrincipalCustomer, ID: "c1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Title)

	count, err := svc.UnreadCount(context.Background(), domain.Principal{Kind: domain.PrincipalCustomer, ID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkRead_OwnershipEnforced(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, &fakeAdminRepo{}, zap.NewNop())

	require.NoError(t, svc.Notify(context.Background(), domain.PrincipalCustomer, "c1", "A", "a"))
	id := repo.created[0].ID

	err := svc.MarkRead(context.Background(), domain.Principal{Kind: domain.PrincipalCustomer, ID: "c2"}, id)
	assert.Error(t, err)

	require.NoError(t, svc.MarkRead(context.Background(), domain.Principal{Kind: domain.PrincipalCustomer, ID: "c1"}, id))

	count, err := svc.UnreadCount(context.Background(), domain.Principal{Kind: domain.PrincipalCustomer, ID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
