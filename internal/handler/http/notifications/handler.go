package notifications

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	app "softglow/internal/app/notifications"
	"softglow/internal/domain"
	"softglow/internal/handler/http/httpx"
	"softglow/internal/handler/http/middleware"
)

type NotificationHandler struct {
	service app.NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(s app.NotificationService, l *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: s, logger: l}
}

func (h *NotificationHandler) principal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return domain.Principal{}, false
	}
	return p, true
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	res, err := h.service.List(r.Context(), p)
	if err != nil {
		h.logger.Error("Error listing notifications", zap.String("recipient_id", p.ID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, res)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	count, err := h.service.UnreadCount(r.Context(), p)
	if err != nil {
		h.logger.Error("Error counting unread notifications", zap.String("recipient_id", p.ID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]int64{"unread": count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "notificationID")
	if err := h.service.MarkRead(r.Context(), p, id); err != nil {
		if errors.Is(err, app.ErrNotificationNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Notification not found")
			return
		}
		h.logger.Error("Error marking notification read", zap.String("notification_id", id), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	if err := h.service.MarkAllRead(r.Context(), p); err != nil {
		h.logger.Error("Error marking all notifications read", zap.String("recipient_id", p.ID), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}
