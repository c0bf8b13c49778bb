package loan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const MaxAmount = 1_000_000

var (
	// ErrClientNotFound means the loan subject could not be resolved to a
	// non-deleted client.
	ErrClientNotFound = errors.New("valid user not found")
	// ErrInvalidAmount means the amount is outside (0, MaxAmount].
	ErrInvalidAmount = errors.New("invalid loan amount")
)

type Entity struct {
	ID        int64      `json:"-"`
	UID       uuid.UUID  `json:"uid"`
	ClientID  int64      `json:"-"`
	Amount    int64      `json:"amount"`
	Approved  bool       `json:"approved"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"-"`
}

// IssueInput references the client by internal id; the service resolves
// the public uid before the transaction starts.
type IssueInput struct {
	UID      uuid.UUID
	ClientID int64
	Amount   int64
}

// Issued is the projection returned from a committed issuance transaction.
type Issued struct {
	UID         uuid.UUID
	Amount      int64
	Approved    bool
	Active      bool
	ClientName  string
	ClientPhone string
}

type Repository interface {
	// Issue inserts a loan inside one transaction, holding an exclusive
	// row lock on the client for the duration.
	Issue(ctx context.Context, in IssueInput) (*Issued, error)
	ListActive(ctx context.Context) ([]Entity, error)
	SumOutstanding(ctx context.Context) (int64, error)
}
