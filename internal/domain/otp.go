package domain

import (
	"errors"
	"time"
)

// EmailOTP is a short-lived email verification code. Only the bcrypt hash of
// the code is stored.
type EmailOTP struct {
	ID         string
	CustomerID string
	CodeHash   string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

func NewEmailOTP(id, customerID, codeHash string, ttl time.Duration) (*EmailOTP, error) {
	if id == "" || customerID == "" || codeHash == "" {
		return nil, errors.New("invalid otp data")
	}
	now := time.Now()
	return &EmailOTP{
		ID:         id,
		CustomerID: customerID,
		CodeHash:   codeHash,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
	}, nil
}

func (o *EmailOTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
