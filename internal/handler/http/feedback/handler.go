package feedback

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	app "softglow/internal/app/feedback"
	"softglow/internal/domain"
	"softglow/internal/handler/http/httpx"
	"softglow/internal/handler/http/middleware"
)

type FeedbackHandler struct {
	service app.FeedbackService
	logger  *zap.Logger
}

func NewFeedbackHandler(s app.FeedbackService, l *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{service: s, logger: l}
}

type approveRequest struct {
	Approved bool `json:"approved"`
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok || p.Kind != domain.PrincipalCustomer {
		httpx.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req app.SubmitFeedbackRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.Submit(r.Context(), p.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrOrderNotEligible):
			httpx.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrAlreadyReviewed):
			httpx.RespondError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("Error submitting feedback", zap.String("customer_id", p.ID), zap.Error(err))
			httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, res)
}

func (h *FeedbackHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	res, err := h.service.ListApprovedByProduct(r.Context(), productID)
	if err != nil {
		h.logger.Error("Error listing product feedback", zap.String("product_id", productID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *FeedbackHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("Error listing feedback", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *FeedbackHandler) SetApproved(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "feedbackID")

	var req approveRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.SetApproved(r.Context(), id, req.Approved)
	if err != nil {
		if errors.Is(err, app.ErrFeedbackNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Feedback not found")
			return
		}
		h.logger.Error("Error updating feedback approval", zap.String("feedback_id", id), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}
