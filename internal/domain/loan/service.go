package loan

import (
	"context"
	"errors"

	"github.com/google/uuid"

	clientdomain "github.com/mikopa/backend/internal/domain/client"
)

type ClientRepository interface {
	GetActiveByUID(ctx context.Context, uid uuid.UUID) (*clientdomain.Entity, error)
}

type Service struct {
	clientRepo ClientRepository
	loanRepo   Repository
}

func NewService(clientRepo ClientRepository, loanRepo Repository) *Service {
	return &Service{clientRepo: clientRepo, loanRepo: loanRepo}
}

// Issue resolves the client uid, then creates the loan inside a single
// transaction that holds a row lock on the client. Two concurrent
// issuances for the same client serialize on that lock; issuances for
// different clients do not wait on each other.
func (s *Service) Issue(ctx context.Context, clientUID uuid.UUID, amount int64) (*Issued, error) {
	if amount <= 0 || amount > MaxAmount {
		return nil, ErrInvalidAmount
	}

	found, err := s.clientRepo.GetActiveByUID(ctx, clientUID)
	if errors.Is(err, clientdomain.ErrNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.loanRepo.Issue(ctx, IssueInput{
		UID:      uuid.New(),
		ClientID: found.ID,
		Amount:   amount,
	})
}

func (s *Service) ListActive(ctx context.Context) ([]Entity, error) {
	return s.loanRepo.ListActive(ctx)
}

func (s *Service) SumOutstanding(ctx context.Context) (int64, error) {
	return s.loanRepo.SumOutstanding(ctx)
}
