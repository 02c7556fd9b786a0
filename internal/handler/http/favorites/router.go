package favorites

import (
	"github.com/go-chi/chi/v5"

	"softglow/internal/handler/http/middleware"
)

func RegisterRoutes(r chi.Router, h *FavoriteHandler, auth *middleware.Authenticator) {
	r.Route("/api/favorites", func(r chi.Router) {
		r.Use(auth.RequireCustomer)
		r.Get("/", h.List)
		r.Post("/{productID}", h.Add)
		r.Delete("/{productID}", h.Remove)
	})
}
