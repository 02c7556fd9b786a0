package auth

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	app "softglow/internal/app/auth"
	"softglow/internal/domain"
	"softglow/internal/handler/http/httpx"
	"softglow/internal/handler/http/middleware"
)

type AuthHandler struct {
	service app.AuthService
	logger  *zap.Logger
}

func NewAuthHandler(s app.AuthService, l *zap.Logger) *AuthHandler {
	return &AuthHandler{service: s, logger: l}
}

func (h *AuthHandler) customerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok || p.Kind != domain.PrincipalCustomer {
		httpx.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return p.ID, true
}

func (h *AuthHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req app.RegisterRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.RegisterCustomer(r.Context(), &req)
	if err != nil {
		if errors.Is(err, app.ErrEmailTaken) {
			httpx.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("Error registering customer", zap.String("email", req.Email), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) LoginCustomer(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.service.LoginCustomer)
}

func (h *AuthHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.service.LoginAdmin)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, req *app.LoginRequest) (*app.AuthResponse, error)) {
	var req app.LoginRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := fn(r.Context(), &req)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			httpx.RespondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Error("Error logging in", zap.String("email", req.Email), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	res, err := h.service.GetProfile(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("Error loading profile", zap.String("customer_id", customerID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	var req app.UpdateProfileRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.UpdateProfile(r.Context(), customerID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("Error updating profile", zap.String("customer_id", customerID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) ProfileCompleteness(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	res, err := h.service.ProfileCompleteness(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("Error checking profile completeness", zap.String("customer_id", customerID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) RequestEmailOTP(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	if err := h.service.RequestEmailOTP(r.Context(), customerID); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("Error requesting email verification", zap.String("customer_id", customerID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"message": "Verification code sent"})
}

func (h *AuthHandler) VerifyEmailOTP(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	var req app.VerifyOTPRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.VerifyEmailOTP(r.Context(), customerID, req.Code); err != nil {
		if errors.Is(err, app.ErrInvalidOTP) {
			httpx.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Error verifying email", zap.String("customer_id", customerID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"message": "Email verified"})
}
