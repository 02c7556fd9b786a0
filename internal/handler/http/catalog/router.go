package catalog

import (
	"github.com/go-chi/chi/v5"

	"softglow/internal/handler/http/middleware"
)

func RegisterRoutes(r chi.Router, h *CatalogHandler, auth *middleware.Authenticator) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{productID}", h.Get)
	})

	r.Route("/api/admin/products", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/", h.Create)
		r.Put("/{productID}", h.Update)
		r.Delete("/{productID}", h.Delete)
	})
}
