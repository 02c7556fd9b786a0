package domain

import (
	"errors"
	"time"
)

// Feedback is a customer rating tied to a completed order line item. It stays
// hidden from the public listing until an admin approves it.
type Feedback struct {
	ID         string
	CustomerID string
	OrderID    string
	ProductID  string
	Rating     int
	Comment    string
	Approved   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewFeedback(id, customerID, orderID, productID string, rating int, comment string) (*Feedback, error) {
	if id == "" || customerID == "" || orderID == "" || productID == "" {
		return nil, errors.New("invalid feedback data")
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	now := time.Now()
	return &Feedback{
		ID:         id,
		CustomerID: customerID,
		OrderID:    orderID,
		ProductID:  productID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
