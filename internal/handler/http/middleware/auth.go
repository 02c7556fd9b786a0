package middleware

import (
	"context"
	"net/http"
	"strings"

	"softglow/internal/app/auth"
	"softglow/internal/domain"
	"softglow/internal/handler/http/httpx"
)

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFromContext returns the principal resolved by the auth middleware.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

type Authenticator struct {
	tokens *auth.TokenManager
}

func NewAuthenticator(tokens *auth.TokenManager) *Authenticator {
	return &Authenticator{tokens: tokens}
}

func (a *Authenticator) resolve(r *http.Request) (domain.Principal, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return domain.Principal{}, false
	}
	p, err := a.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, false
	}
	return p, true
}

func (a *Authenticator) RequireCustomer(next http.Handler) http.Handler {
	return a.requireKind(domain.PrincipalCustomer, next)
}

func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.requireKind(domain.PrincipalAdmin, next)
}

func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return a.requireKind("", next)
}

func (a *Authenticator) requireKind(kind domain.PrincipalKind, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := a.resolve(r)
		if !ok {
			httpx.RespondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if kind != "" && p.Kind != kind {
			httpx.RespondError(w, http.StatusUnauthorized, "Insufficient privileges")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}
