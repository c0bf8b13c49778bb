package client

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound means no non-deleted client matched the lookup.
	ErrNotFound = errors.New("client not found")
	// ErrActiveExists means a non-deleted client already holds the phone number.
	ErrActiveExists = errors.New("active client already exists")
	// ErrDeactivatedExists means the store rejected the insert because a
	// soft-deleted client still holds the phone number.
	ErrDeactivatedExists = errors.New("deactivated client already exists")
	// ErrHasActiveLoans means the deactivation precondition failed.
	ErrHasActiveLoans = errors.New("client has active loans")
)

type Entity struct {
	ID          int64      `json:"-"`
	UID         uuid.UUID  `json:"uid"`
	PhoneNumber string     `json:"phone_number"`
	FullName    string     `json:"full_name"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"-"`
}

type CreateInput struct {
	UID         uuid.UUID
	PhoneNumber string
	FullName    string
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*Entity, error)
	GetActiveByPhone(ctx context.Context, phoneNumber string) (*Entity, error)
	GetActiveByUID(ctx context.Context, uid uuid.UUID) (*Entity, error)
	Deactivate(ctx context.Context, id int64) error
}
