package notifications

import (
	"github.com/go-chi/chi/v5"

	"softglow/internal/handler/http/middleware"
)

func RegisterRoutes(r chi.Router, h *NotificationHandler, auth *middleware.Authenticator) {
	r.Route("/api/notifications", func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/", h.List)
		r.Get("/unread-count", h.UnreadCount)
		r.Put("/{notificationID}/read", h.MarkRead)
		r.Put("/read-all", h.MarkAllRead)
	})
}
