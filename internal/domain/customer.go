package domain

import (
	"errors"
	"time"
)

type Customer struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	City          string
	State         string
	PostalCode    string
	Country       string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewCustomer(id, name, email, passwordHash string) (*Customer, error) {
	if id == "" || name == "" || email == "" || passwordHash == "" {
		return nil, errors.New("invalid customer data")
	}
	now := time.Now()
	return &Customer{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// MissingProfileFields lists what still has to be filled in before checkout
// can start. The client prompts for exactly these fields.
func (c *Customer) MissingProfileFields() []string {
	var missing []string
	if c.Phone == "" {
		missing = append(missing, "phone")
	}
	if c.AddressLine1 == "" {
		missing = append(missing, "address_line1")
	}
	if c.City == "" {
		missing = append(missing, "city")
	}
	if c.State == "" {
		missing = append(missing, "state")
	}
	if c.PostalCode == "" {
		missing = append(missing, "postal_code")
	}
	if c.Country == "" {
		missing = append(missing, "country")
	}
	return missing
}

func (c *Customer) ProfileComplete() bool {
	return len(c.MissingProfileFields()) == 0
}

// ShippingAddress snapshots the customer's contact fields onto an order.
func (c *Customer) ShippingAddress() ShippingAddress {
	return ShippingAddress{
		Name:       c.Name,
		Phone:      c.Phone,
		Line1:      c.AddressLine1,
		Line2:      c.AddressLine2,
		City:       c.City,
		State:      c.State,
		PostalCode: c.PostalCode,
		Country:    c.Country,
	}
}
