package postgres

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikopa/backend/internal/domain/loan"
)

const dialectPostgres = "postgres"

type LoanRepository struct {
	pool *pgxpool.Pool
}

func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

// Issue creates a loan inside a single transaction. The SELECT ... FOR
// UPDATE takes an exclusive lock on the client row, so concurrent
// issuances for the same client serialize here while other clients'
// rows stay untouched. The deferred rollback is a no-op after commit,
// which guarantees the lock is released on every exit path.
func (r *LoanRepository) Issue(ctx context.Context, in loan.IssueInput) (*loan.Issued, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := &loan.Issued{}
	err = tx.QueryRow(ctx, `
SELECT full_name, phone_number
FROM clients WHERE id = $1 AND deleted_at IS NULL
FOR UPDATE
`, in.ClientID).Scan(&out.ClientName, &out.ClientPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, loan.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
INSERT INTO loans (uid, client_id, amount, approved, active)
VALUES ($1, $2, $3, TRUE, TRUE)
RETURNING uid, amount, approved, active
`, in.UID, in.ClientID, in.Amount).Scan(&out.UID, &out.Amount, &out.Approved, &out.Active)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LoanRepository) ListActive(ctx context.Context) ([]loan.Entity, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		From("loans").
		Select("id", "uid", "client_id", "amount", "approved", "active", "created_at").
		Where(goqu.C("deleted_at").IsNull(), goqu.C("active").IsTrue()).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]loan.Entity, 0)
	for rows.Next() {
		var item loan.Entity
		if err := rows.Scan(
			&item.ID, &item.UID, &item.ClientID, &item.Amount,
			&item.Approved, &item.Active, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SumOutstanding filters on deletion only. The active flag is not part
// of the filter, so inactive-but-undeleted loans count toward the total.
func (r *LoanRepository) SumOutstanding(ctx context.Context) (int64, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		From("loans").
		Select(goqu.COALESCE(goqu.SUM("amount"), 0).As("total")).
		Where(goqu.C("deleted_at").IsNull()).
		ToSQL()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, sqlQuery).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
