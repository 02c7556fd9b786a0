package contact

import (
	"github.com/go-chi/chi/v5"

	"softglow/internal/handler/http/middleware"
)

func RegisterRoutes(r chi.Router, h *ContactHandler, auth *middleware.Authenticator) {
	r.Post("/api/contact", h.Submit)

	r.Route("/api/admin/contact", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/", h.ListAll)
		r.Put("/{messageID}/resolve", h.Resolve)
	})
}
