package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"softglow/internal/domain"
	"softglow/internal/events"
	"softglow/internal/repository/outbox_repo"
)

type fakeCustomerRepo struct {
	byID     map[string]*domain.Customer
	byEmail  map[string]*domain.Customer
	otps     map[string]*domain.EmailOTP
	verified []string
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		byID:    make(map[string]*domain.Customer),
		byEmail: make(map[string]*domain.Customer),
		otps:    make(map[string]*domain.EmailOTP),
	}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	if _, taken := r.byEmail[c.Email]; taken {
		return domain.ErrEmailTaken
	}
	r.byID[c.ID] = c
	r.byEmail[c.Email] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) MarkEmailVerified(_ context.Context, id string) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	c.EmailVerified = true
	r.verified = append(r.verified, id)
	return nil
}

func (r *fakeCustomerRepo) CreateOTP(_ context.Context, otp *domain.EmailOTP) error {
	r.otps[otp.CustomerID] = otp
	return nil
}

func (r *fakeCustomerRepo) GetLatestOTP(_ context.Context, customerID string) (*domain.EmailOTP, error) {
	otp, ok := r.otps[customerID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return otp, nil
}

func (r *fakeCustomerRepo) DeleteOTPs(_ context.Context, customerID string) error {
	delete(r.otps, customerID)
	return nil
}

type fakeAdminRepo struct {
	byEmail map[string]*domain.Admin
}

func (r *fakeAdminRepo) Create(_ context.Context, _ *domain.Admin) error { return nil }

func (r *fakeAdminRepo) GetByID(_ context.Context, _ string) (*domain.Admin, error) {
	return nil, domain.ErrAdminNotFound
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return a, nil
}

func (r *fakeAdminRepo) ListIDs(_ context.Context) ([]string, error) { return nil, nil }

type fakeOutboxRepo struct {
	messages []*outbox_repo.OutboxMessage
}

func (r *fakeOutboxRepo) CreateMessage(_ context.Context, msg *outbox_repo.OutboxMessage) error {
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeOutboxRepo) CreateMessageTx(_ context.Context, _ *sql.Tx, msg *outbox_repo.OutboxMessage) error {
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeOutboxRepo) GetUnsentMessages(_ context.Context) ([]*outbox_repo.OutboxMessage, error) {
	return r.messages, nil
}

func (r *fakeOutboxRepo) MarkMessageSent(_ context.Context, _ string) error { return nil }

type fixture struct {
	service   AuthService
	customers *fakeCustomerRepo
	admins    *fakeAdminRepo
	outbox    *fakeOutboxRepo
	tokens    *TokenManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		customers: newFakeCustomerRepo(),
		admins:    &fakeAdminRepo{byEmail: make(map[string]*domain.Admin)},
		outbox:    &fakeOutboxRepo{},
		tokens:    NewTokenManager("test-secret", time.Hour),
	}
	f.service = NewAuthService(f.customers, f.admins, f.outbox, f.tokens, "emails", zap.NewNop())
	return f
}

func TestRegisterCustomer(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.RegisterCustomer(context.Background(), &RegisterRequest{
		Name: "Asha", Email: "Asha@Example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)

	// Email is lowered, the token resolves to the new customer, and an OTP
	// email landed in the outbox.
	assert.Equal(t, "asha@example.com", res.User.Email)
	p, err := f.tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.PrincipalCustomer, p.Kind)
	assert.Equal(t, res.User.ID, p.ID)

	require.Len(t, f.outbox.messages, 1)
	assert.Equal(t, "emails", f.outbox.messages[0].Topic)
	var email events.EmailEvent
	require.NoError(t, json.Unmarshal(f.outbox.messages[0].Payload, &email))
	assert.Equal(t, "email_otp", email.Template)
	assert.Len(t, email.Data["code"], 6)

	// Stored hash is not the plain password.
	stored := f.customers.byEmail["asha@example.com"]
	assert.NotEqual(t, "sup3rsecret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("sup3rsecret")))
}

func TestRegisterCustomer_EmailTaken(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RegisterCustomer(context.Background(), &RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)

	_, err = f.service.RegisterCustomer(context.Background(), &RegisterRequest{
		Name: "Imposter", Email: "ASHA@example.com", Password: "different1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginCustomer(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.RegisterCustomer(context.Background(), &RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)

	res, err := f.service.LoginCustomer(context.Background(), &LoginRequest{
		Email: "asha@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.PrincipalCustomer), res.User.Role)

	_, err = f.service.LoginCustomer(context.Background(), &LoginRequest{
		Email: "asha@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.service.LoginCustomer(context.Background(), &LoginRequest{
		Email: "nobody@example.com", Password: "sup3rsecret",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginAdmin(t *testing.T) {
	f := newFixture(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	f.admins.byEmail["ops@softglow.in"] = &domain.Admin{ID: "a1", Name: "Ops", Email: "ops@softglow.in", PasswordHash: string(hash)}

	res, err := f.service.LoginAdmin(context.Background(), &LoginRequest{
		Email: "ops@softglow.in", Password: "adminpass",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.PrincipalAdmin), res.User.Role)

	p, err := f.tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.PrincipalAdmin, p.Kind)
}

func TestUpdateProfileAndCompleteness(t *testing.T) {
	f := newFixture(t)
	reg, err := f.service.RegisterCustomer(context.Background(), &RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)

	completeness, err := f.service.ProfileCompleteness(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.False(t, completeness.Complete)
	assert.Contains(t, completeness.MissingFields, "phone")

	_, err = f.service.UpdateProfile(context.Background(), reg.User.ID, &UpdateProfileRequest{
		Name: "Asha", Phone: "555", AddressLine1: "1 Main St",
		City: "Pune", State: "MH", PostalCode: "411001", Country: "IN",
	})
	require.NoError(t, err)

	completeness, err = f.service.ProfileCompleteness(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.True(t, completeness.Complete)
	assert.Empty(t, completeness.MissingFields)
}

func TestVerifyEmailOTP(t *testing.T) {
	f := newFixture(t)
	reg, err := f.service.RegisterCustomer(context.Background(), &RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)

	var email events.EmailEvent
	require.NoError(t, json.Unmarshal(f.outbox.messages[0].Payload, &email))
	code := email.Data["code"]

	assert.ErrorIs(t, f.service.VerifyEmailOTP(context.Background(), reg.User.ID, "000000"), ErrInvalidOTP)

	require.NoError(t, f.service.VerifyEmailOTP(context.Background(), reg.User.ID, code))
	assert.True(t, f.customers.byID[reg.User.ID].EmailVerified)

	// The code is single-use.
	assert.ErrorIs(t, f.service.VerifyEmailOTP(context.Background(), reg.User.ID, code), ErrInvalidOTP)
}

func TestVerifyEmailOTP_Expired(t *testing.T) {
	f := newFixture(t)
	reg, err := f.service.RegisterCustomer(context.Background(), &RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)

	var email events.EmailEvent
	require.NoError(t, json.Unmarshal(f.outbox.messages[0].Payload, &email))
	code := email.Data["code"]

	f.customers.otps[reg.User.ID].ExpiresAt = time.Now().Add(-time.Minute)
	assert.ErrorIs(t, f.service.VerifyEmailOTP(context.Background(), reg.User.ID, code), ErrInvalidOTP)
}
