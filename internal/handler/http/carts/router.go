package carts

import (
	"github.com/go-chi/chi/v5"

	"softglow/internal/handler/http/middleware"
)

func RegisterRoutes(r chi.Router, h *CartHandler, auth *middleware.Authenticator) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(auth.RequireCustomer)
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.UpdateItem)
		r.Delete("/items/{productID}", h.RemoveItem)
	})
}
