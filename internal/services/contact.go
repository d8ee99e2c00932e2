package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"agenda/internal/domain"
)

type contactService struct {
	contactRepo    domain.ContactRepository
	contextTimeout time.Duration
}

func NewContactService(contactRepo domain.ContactRepository, timeout time.Duration) domain.ContactService {
	return &contactService{contactRepo: contactRepo, contextTimeout: timeout}
}

func (s *contactService) CreateContact(ctx context.Context, contact *domain.Contact) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = strings.ToLower(strings.TrimSpace(contact.Email))
	contact.Phone = strings.TrimSpace(contact.Phone)
	if contact.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	contact.ID = uuid.NewString()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	return s.contactRepo.Create(ctx, contact)
}

func (s *contactService) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.contactRepo.GetByID(ctx, id)
}

func (s *contactService) ListContacts(ctx context.Context) ([]*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.contactRepo.List(ctx)
}

func (s *contactService) DeleteContact(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.contactRepo.Delete(ctx, id)
}
