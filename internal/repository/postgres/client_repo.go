package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikopa/backend/internal/domain/client"
)

// Postgres SQLSTATE for unique_violation.
const uniqueViolationCode = "23505"

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

func (r *ClientRepository) Create(ctx context.Context, in client.CreateInput) (*client.Entity, error) {
	q := `
INSERT INTO clients (uid, phone_number, full_name)
VALUES ($1, $2, $3)
RETURNING id, uid, phone_number, full_name, created_at
`
	out := &client.Entity{}
	err := r.pool.QueryRow(ctx, q, in.UID, in.PhoneNumber, in.FullName).
		Scan(&out.ID, &out.UID, &out.PhoneNumber, &out.FullName, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, client.ErrDeactivatedExists
		}
		return nil, err
	}
	return out, nil
}

func (r *ClientRepository) GetActiveByPhone(ctx context.Context, phoneNumber string) (*client.Entity, error) {
	q := `
SELECT id, uid, phone_number, full_name, created_at
FROM clients WHERE phone_number = $1 AND deleted_at IS NULL
`
	out := &client.Entity{}
	err := r.pool.QueryRow(ctx, q, phoneNumber).
		Scan(&out.ID, &out.UID, &out.PhoneNumber, &out.FullName, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, client.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClientRepository) GetActiveByUID(ctx context.Context, uid uuid.UUID) (*client.Entity, error) {
	q := `
SELECT id, uid, phone_number, full_name, created_at
FROM clients WHERE uid = $1 AND deleted_at IS NULL
`
	out := &client.Entity{}
	err := r.pool.QueryRow(ctx, q, uid).
		Scan(&out.ID, &out.UID, &out.PhoneNumber, &out.FullName, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, client.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Deactivate soft-deletes the client in one conditional statement. A zero
// row count means the active-loan precondition failed (or the client was
// deleted concurrently), which callers treat as ErrHasActiveLoans.
func (r *ClientRepository) Deactivate(ctx context.Context, id int64) error {
	q := `
UPDATE clients SET deleted_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
  AND NOT EXISTS (
    SELECT 1 FROM loans l
    WHERE l.client_id = clients.id AND l.active AND l.deleted_at IS NULL
  )
`
	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return client.ErrHasActiveLoans
	}
	return nil
}
