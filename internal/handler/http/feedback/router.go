package feedback

import (
	"github.com/go-chi/chi/v5"

	"softglow/internal/handler/http/middleware"
)

func RegisterRoutes(r chi.Router, h *FeedbackHandler, auth *middleware.Authenticator) {
	r.Route("/api/feedback", func(r chi.Router) {
		r.Get("/product/{productID}", h.ListByProduct)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireCustomer)
			r.Post("/", h.Submit)
		})
	})

	r.Route("/api/admin/feedback", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/", h.ListAll)
		r.Put("/{feedbackID}/approve", h.SetApproved)
	})
}
