package orders

import (
	"github.com/go-chi/chi/v5"

	"softglow/internal/handler/http/middleware"
)

func RegisterRoutes(r chi.Router, h *OrderHandler, auth *middleware.Authenticator) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireCustomer)
			r.Post("/customer/create-payment", h.CreatePayment)
			r.Post("/customer/verify-payment", h.VerifyPayment)
			r.Get("/customer/orders", h.ListOwn)
			r.Get("/customer/orders/{orderID}", h.GetOwn)
			r.Put("/customer/orders/{orderID}/cancel", h.Cancel)
			r.Put("/customer/orders/{orderID}/return", h.Return)
			r.Get("/customer/orders/{orderID}/invoice", h.Invoice)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/admin/orders", h.ListAll)
			r.Get("/admin/orders/{orderID}", h.Get)
			r.Put("/admin/orders/{orderID}/status", h.UpdateStatus)
		})
	})
}
