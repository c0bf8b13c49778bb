package client

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new client. The phone number is unique among
// non-deleted clients; a soft-deleted holder of the same number surfaces
// as ErrDeactivatedExists via the store's uniqueness constraint.
func (s *Service) Create(ctx context.Context, phoneNumber, fullName string) (*Entity, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	fullName = strings.TrimSpace(fullName)

	existing, err := s.repo.GetActiveByPhone(ctx, phoneNumber)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrActiveExists
	}

	return s.repo.Create(ctx, CreateInput{
		UID:         uuid.New(),
		PhoneNumber: phoneNumber,
		FullName:    fullName,
	})
}

// Deactivate soft-deletes the client identified by uid. Clients with an
// active loan cannot be deactivated.
func (s *Service) Deactivate(ctx context.Context, uid uuid.UUID) error {
	found, err := s.repo.GetActiveByUID(ctx, uid)
	if err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, found.ID)
}
