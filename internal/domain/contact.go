package domain

import (
	"context"
	"time"
)

// Contact is a person an event can be linked to.
// swagger:model Contact
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewContact returns a new Contact. ID is set by the service on create.
func NewContact(name, email, phone string, createdAt, updatedAt time.Time) *Contact {
	return &Contact{
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// ContactRepository defines the interface for contact storage
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	GetByID(ctx context.Context, id string) (*Contact, error)
	List(ctx context.Context) ([]*Contact, error)
	Delete(ctx context.Context, id string) error
}

// ContactService defines the business logic for contacts.
type ContactService interface {
	CreateContact(ctx context.Context, contact *Contact) error
	GetContact(ctx context.Context, id string) (*Contact, error)
	ListContacts(ctx context.Context) ([]*Contact, error)
	DeleteContact(ctx context.Context, id string) error
}
