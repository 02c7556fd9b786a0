package domain

import (
	"errors"
	"time"
)

type ContactStatus string

const (
	ContactStatusOpen     ContactStatus = "OPEN"
	ContactStatusResolved ContactStatus = "RESOLVED"
)

// ContactMessage is a public form capture triaged by admins.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    ContactStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewContactMessage(id, name, email, subject, message string) (*ContactMessage, error) {
	if id == "" || name == "" || email == "" || message == "" {
		return nil, errors.New("invalid contact message data")
	}
	now := time.Now()
	return &ContactMessage{
		ID:        id,
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Status:    ContactStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (m *ContactMessage) Resolve() {
	m.Status = ContactStatusResolved
	m.UpdatedAt = time.Now()
}
