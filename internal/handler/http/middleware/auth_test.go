package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softglow/internal/app/auth"
	"softglow/internal/domain"
)

func authFixture(t *testing.T) (*Authenticator, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthenticator(tokens), tokens
}

func principalEcho(t *testing.T, got *domain.Principal) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		*got = p
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireCustomer_ValidToken(t *testing.T) {
	a, tokens := authFixture(t)
	token, err := tokens.Issue(domain.Principal{Kind: domain.PrincipalCustomer, ID: "c1"})
	require.NoError(t, err)

	var got domain.Principal
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	a.RequireCustomer(principalEcho(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, domain.PrincipalCustomer, got.Kind)
}

func TestRequireCustomer_MissingHeader(t *testing.T) {
	a, _ := authFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	a.RequireCustomer(http.NotFoundHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_RejectsCustomerToken(t *testing.T) {
	a, tokens := authFixture(t)
	token, err := tokens.Issue(domain.Principal{Kind: domain.PrincipalCustomer, ID: "c1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	a.RequireAdmin(http.NotFoundHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_AcceptsEitherKind(t *testing.T) {
	a, tokens := authFixture(t)

	for _, kind := range []domain.PrincipalKind{domain.PrincipalCustomer, domain.PrincipalAdmin} {
		token, err := tokens.Issue(domain.Principal{Kind: kind, ID: "id-" + string(kind)})
		require.NoError(t, err)

		var got domain.Principal
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		a.RequireAuth(principalEcho(t, &got)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, kind, got.Kind)
	}
}

func TestRequireAuth_MalformedToken(t *testing.T) {
	a, _ := authFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	a.RequireAuth(http.NotFoundHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
