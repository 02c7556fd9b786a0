package contact

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	app "softglow/internal/app/contact"
	"softglow/internal/handler/http/httpx"
)

type ContactHandler struct {
	service app.ContactService
	logger  *zap.Logger
}

func NewContactHandler(s app.ContactService, l *zap.Logger) *ContactHandler {
	return &ContactHandler{service: s, logger: l}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req app.SubmitRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		h.logger.Error("Error saving contact message", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, res)
}

func (h *ContactHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("Error listing contact messages", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *ContactHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "messageID")
	res, err := h.service.Resolve(r.Context(), id)
	if err != nil {
		if errors.Is(err, app.ErrMessageNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Message not found")
			return
		}
		h.logger.Error("Error resolving contact message", zap.String("message_id", id), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}
