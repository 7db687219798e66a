package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// PrincipalRepository defines persistence access for admin principals.
type PrincipalRepository interface {
	Create(ctx context.Context, principal *domain.Principal) error
	Update(ctx context.Context, principal *domain.Principal) error
	GetByID(ctx context.Context, id string) (*domain.Principal, error)
	GetByUsername(ctx context.Context, username string) (*domain.Principal, error)
}

type principalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository returns a Postgres-backed implementation.
func NewPrincipalRepository(pool *pgxpool.Pool) PrincipalRepository {
	return &principalRepository{pool: pool}
}

func (r *principalRepository) Create(ctx context.Context, principal *domain.Principal) error {
	const query = `
        INSERT INTO principals (username, password_hash, role)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		principal.Username,
		principal.PasswordHash,
		principal.Role,
	).Scan(&principal.ID, &principal.CreatedAt, &principal.UpdatedAt)
}

func (r *principalRepository) Update(ctx context.Context, principal *domain.Principal) error {
	const query = `
        UPDATE principals SET username=$1, password_hash=$2, role=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		principal.Username,
		principal.PasswordHash,
		principal.Role,
		principal.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *principalRepository) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	const query = `
        SELECT id, username, password_hash, role, created_at, updated_at
        FROM principals WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

// GetByUsername is a case-sensitive lookup. Case-folding usernames is an
// explicit non-choice carried over from the existing contract.
func (r *principalRepository) GetByUsername(ctx context.Context, username string) (*domain.Principal, error) {
	const query = `
        SELECT id, username, password_hash, role, created_at, updated_at
        FROM principals WHERE username=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *principalRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Principal, error) {
	var principal domain.Principal
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&principal.ID,
		&principal.Username,
		&principal.PasswordHash,
		&principal.Role,
		&principal.CreatedAt,
		&principal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &principal, nil
}
