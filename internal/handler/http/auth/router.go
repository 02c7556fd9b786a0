package auth

import (
	"github.com/go-chi/chi/v5"

	"softglow/internal/handler/http/middleware"
)

func RegisterRoutes(r chi.Router, h *AuthHandler, auth *middleware.Authenticator) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/customer/register", h.RegisterCustomer)
		r.Post("/customer/login", h.LoginCustomer)
		r.Post("/admin/login", h.LoginAdmin)
	})

	r.Route("/api/customers", func(r chi.Router) {
		r.Use(auth.RequireCustomer)
		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile)
		r.Get("/profile/completeness", h.ProfileCompleteness)
		r.Post("/verify-email/request", h.RequestEmailOTP)
		r.Post("/verify-email", h.VerifyEmailOTP)
	})
}
