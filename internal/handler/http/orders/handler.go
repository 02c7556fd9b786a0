package orders

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	app "softglow/internal/app/orders"
	"softglow/internal/domain"
	"softglow/internal/handler/http/httpx"
	"softglow/internal/handler/http/middleware"
)

type OrderHandler struct {
	service app.OrderService
	logger  *zap.Logger
}

func NewOrderHandler(s app.OrderService, l *zap.Logger) *OrderHandler {
	return &OrderHandler{service: s, logger: l}
}

func (h *OrderHandler) customerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok || p.Kind != domain.PrincipalCustomer {
		httpx.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return p.ID, true
}

func (h *OrderHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}

	res, err := h.service.CreatePaymentOrder(r.Context(), customerID)
	if err != nil {
		var profileErr *app.ProfileIncompleteError
		switch {
		case errors.As(err, &profileErr):
			httpx.RespondFieldErrors(w, http.StatusBadRequest, "Profile incomplete", profileErr.Fields)
		case errors.Is(err, app.ErrCartEmpty):
			httpx.RespondError(w, http.StatusBadRequest, "Cart is empty")
		default:
			h.logger.Error("Error creating payment order", zap.String("customer_id", customerID), zap.Error(err))
			httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}

	var req app.VerifyPaymentRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.VerifyPayment(r.Context(), customerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidSignature):
			httpx.RespondError(w, http.StatusBadRequest, "Payment verification failed")
		case errors.Is(err, app.ErrCartEmpty):
			httpx.RespondError(w, http.StatusBadRequest, "Cart is empty")
		default:
			h.logger.Error("Error verifying payment", zap.String("customer_id", customerID), zap.Error(err))
			httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *OrderHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	res, err := h.service.GetCustomerOrders(r.Context(), customerID)
	if err != nil {
		h.logger.Error("Error listing customer orders", zap.String("customer_id", customerID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *OrderHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	orderID := chi.URLParam(r, "orderID")

	res, err := h.service.GetCustomerOrder(r.Context(), customerID, orderID)
	if err != nil {
		if errors.Is(err, app.ErrOrderNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.Error("Error getting order", zap.String("order_id", orderID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	orderID := chi.URLParam(r, "orderID")

	res, err := h.service.CancelOrder(r.Context(), customerID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrOrderNotFound):
			httpx.RespondError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, domain.ErrCancelNotAllowed):
			httpx.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Error cancelling order", zap.String("order_id", orderID), zap.Error(err))
			httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *OrderHandler) Return(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	orderID := chi.URLParam(r, "orderID")

	res, err := h.service.ReturnOrder(r.Context(), customerID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrOrderNotFound):
			httpx.RespondError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, domain.ErrReturnNotAllowed), errors.Is(err, domain.ErrReturnWindowOver):
			httpx.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Error requesting return", zap.String("order_id", orderID), zap.Error(err))
			httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *OrderHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	orderID := chi.URLParam(r, "orderID")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="invoice.pdf"`)
	if err := h.service.WriteInvoice(r.Context(), customerID, orderID, w); err != nil {
		w.Header().Del("Content-Type")
		w.Header().Del("Content-Disposition")
		switch {
		case errors.Is(err, app.ErrOrderNotFound):
			httpx.RespondError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, app.ErrInvoiceUnavailable):
			httpx.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Error rendering invoice", zap.String("order_id", orderID), zap.Error(err))
			httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetAllOrders(r.Context())
	if err != nil {
		h.logger.Error("Error listing all orders", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	res, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, app.ErrOrderNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.Error("Error getting order", zap.String("order_id", orderID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req app.UpdateStatusRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.UpdateStatus(r.Context(), orderID, domain.OrderStatus(req.Status), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrOrderNotFound):
			httpx.RespondError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, app.ErrInvalidStatus):
			httpx.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Error updating order status", zap.String("order_id", orderID), zap.Error(err))
			httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}
