package carts

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	app "softglow/internal/app/carts"
	"softglow/internal/domain"
	"softglow/internal/handler/http/httpx"
	"softglow/internal/handler/http/middleware"
)

type CartHandler struct {
	service app.CartService
	logger  *zap.Logger
}

func NewCartHandler(s app.CartService, l *zap.Logger) *CartHandler {
	return &CartHandler{service: s, logger: l}
}

func (h *CartHandler) customerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok || p.Kind != domain.PrincipalCustomer {
		httpx.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return p.ID, true
}

func (h *CartHandler) respond(w http.ResponseWriter, customerID string, res *app.CartResponse, err error) {
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			httpx.RespondError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, app.ErrProductUnavailable), errors.Is(err, domain.ErrInsufficientStock):
			httpx.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrItemNotInCart):
			httpx.RespondError(w, http.StatusNotFound, err.Error())
		default:
			h.logger.Error("Cart operation failed", zap.String("customer_id", customerID), zap.Error(err))
			httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	res, err := h.service.GetCart(r.Context(), customerID)
	h.respond(w, customerID, res, err)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	var req app.AddItemRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.service.AddItem(r.Context(), customerID, &req)
	h.respond(w, customerID, res, err)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "productID")

	var req app.UpdateItemRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.service.UpdateItem(r.Context(), customerID, productID, req.Quantity)
	h.respond(w, customerID, res, err)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "productID")
	res, err := h.service.RemoveItem(r.Context(), customerID, productID)
	h.respond(w, customerID, res, err)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	res, err := h.service.Clear(r.Context(), customerID)
	h.respond(w, customerID, res, err)
}
