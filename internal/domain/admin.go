package domain

import (
	"errors"
	"time"
)

type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewAdmin(id, name, email, passwordHash string) (*Admin, error) {
	if id == "" || name == "" || email == "" || passwordHash == "" {
		return nil, errors.New("invalid admin data")
	}
	now := time.Now()
	return &Admin{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// PrincipalKind discriminates the token's subject type so the auth middleware
// resolves exactly one collection, never probing both.
type PrincipalKind string

const (
	PrincipalAdmin    PrincipalKind = "admin"
	PrincipalCustomer PrincipalKind = "customer"
)

type Principal struct {
	Kind PrincipalKind
	ID   string
}
