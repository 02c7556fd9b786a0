package domain

import "errors"

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrCartNotFound         = errors.New("cart not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrFeedbackNotFound     = errors.New("feedback not found")
	ErrContactNotFound      = errors.New("contact message not found")
	ErrFavoriteExists       = errors.New("product already in favorites")
	ErrFavoriteNotFound     = errors.New("favorite not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrDuplicatePayment     = errors.New("order already exists for payment")
)
