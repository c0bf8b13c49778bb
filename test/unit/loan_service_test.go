package unit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	loandomain "github.com/mikopa/backend/internal/domain/loan"
)

type loanRepoMock struct {
	issued []loandomain.IssueInput
	list   []loandomain.Entity
	total  int64

	clientName  string
	clientPhone string
}

func (m *loanRepoMock) Issue(_ context.Context, in loandomain.IssueInput) (*loandomain.Issued, error) {
	m.issued = append(m.issued, in)
	return &loandomain.Issued{
		UID:         in.UID,
		Amount:      in.Amount,
		Approved:    true,
		Active:      true,
		ClientName:  m.clientName,
		ClientPhone: m.clientPhone,
	}, nil
}

func (m *loanRepoMock) ListActive(_ context.Context) ([]loandomain.Entity, error) {
	return m.list, nil
}

func (m *loanRepoMock) SumOutstanding(_ context.Context) (int64, error) {
	return m.total, nil
}

func TestLoanIssueHappyPath(t *testing.T) {
	clients := newClientRepoMock()
	created, err := clients.Create(context.Background(), clientCreateInput("+254712345678", "Jane Doe"))
	require.NoError(t, err)

	loans := &loanRepoMock{clientName: "Jane Doe", clientPhone: "+254712345678"}
	svc := loandomain.NewService(clients, loans)

	issued, err := svc.Issue(context.Background(), created.UID, 5000)
	require.NoError(t, err)
	require.EqualValues(t, 5000, issued.Amount)
	require.True(t, issued.Approved)
	require.True(t, issued.Active)
	require.Equal(t, "Jane Doe", issued.ClientName)
	require.Len(t, loans.issued, 1)
	require.Equal(t, created.ID, loans.issued[0].ClientID)
}

func TestLoanIssueAmountBounds(t *testing.T) {
	clients := newClientRepoMock()
	created, err := clients.Create(context.Background(), clientCreateInput("+254712345678", "Jane Doe"))
	require.NoError(t, err)

	loans := &loanRepoMock{}
	svc := loandomain.NewService(clients, loans)

	for _, amount := range []int64{0, -1, loandomain.MaxAmount + 1} {
		_, err := svc.Issue(context.Background(), created.UID, amount)
		require.ErrorIs(t, err, loandomain.ErrInvalidAmount, "amount %d", amount)
	}
	require.Empty(t, loans.issued, "rejected amounts must not reach the store")

	_, err = svc.Issue(context.Background(), created.UID, loandomain.MaxAmount)
	require.NoError(t, err)
}

func TestLoanIssueUnknownClient(t *testing.T) {
	clients := newClientRepoMock()
	loans := &loanRepoMock{}
	svc := loandomain.NewService(clients, loans)

	_, err := svc.Issue(context.Background(), uuid.New(), 5000)
	require.ErrorIs(t, err, loandomain.ErrClientNotFound)
	require.Empty(t, loans.issued)
}

func TestLoanIssueDeletedClient(t *testing.T) {
	clients := newClientRepoMock()
	created, err := clients.Create(context.Background(), clientCreateInput("+254712345678", "Jane Doe"))
	require.NoError(t, err)
	now := created.CreatedAt
	created.DeletedAt = &now

	svc := loandomain.NewService(clients, &loanRepoMock{})
	_, err = svc.Issue(context.Background(), created.UID, 5000)
	require.ErrorIs(t, err, loandomain.ErrClientNotFound)
}

func TestLoanQueries(t *testing.T) {
	loans := &loanRepoMock{
		list:  []loandomain.Entity{{Amount: 100, Active: true}, {Amount: 200, Active: true}},
		total: 700,
	}
	svc := loandomain.NewService(newClientRepoMock(), loans)

	items, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	total, err := svc.SumOutstanding(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 700, total)
}
