package favorites

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	app "softglow/internal/app/favorites"
	"softglow/internal/domain"
	"softglow/internal/handler/http/httpx"
	"softglow/internal/handler/http/middleware"
)

type FavoriteHandler struct {
	service app.FavoriteService
	logger  *zap.Logger
}

func NewFavoriteHandler(s app.FavoriteService, l *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{service: s, logger: l}
}

func (h *FavoriteHandler) customerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok || p.Kind != domain.PrincipalCustomer {
		httpx.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return p.ID, true
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	res, err := h.service.List(r.Context(), customerID)
	if err != nil {
		h.logger.Error("Error listing favorites", zap.String("customer_id", customerID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "productID")

	res, err := h.service.Add(r.Context(), customerID, productID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			httpx.RespondError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, app.ErrAlreadyFavorite):
			httpx.RespondError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("Error adding favorite",
				zap.String("customer_id", customerID),
				zap.String("product_id", productID),
				zap.Error(err))
			httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, res)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "productID")

	if err := h.service.Remove(r.Context(), customerID, productID); err != nil {
		if errors.Is(err, app.ErrNotFavorite) {
			httpx.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Error removing favorite",
			zap.String("customer_id", customerID),
			zap.String("product_id", productID),
			zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"message": "Removed from favorites"})
}
