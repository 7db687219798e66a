package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// ContactMessageRepository stores contact-form submissions addressed to a
// principal. Messages are append-only and read back in insertion order.
type ContactMessageRepository interface {
	Append(ctx context.Context, message *domain.ContactMessage) error
	ListByPrincipal(ctx context.Context, principalID string) ([]domain.ContactMessage, error)
}

type contactMessageRepository struct {
	pool *pgxpool.Pool
}

// NewContactMessageRepository returns a Postgres-backed implementation.
func NewContactMessageRepository(pool *pgxpool.Pool) ContactMessageRepository {
	return &contactMessageRepository{pool: pool}
}

func (r *contactMessageRepository) Append(ctx context.Context, message *domain.ContactMessage) error {
	const query = `
        INSERT INTO contact_messages (principal_id, name, email, message)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		message.PrincipalID,
		message.Name,
		message.Email,
		message.Message,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *contactMessageRepository) ListByPrincipal(ctx context.Context, principalID string) ([]domain.ContactMessage, error) {
	const query = `
        SELECT id, principal_id, name, email, message, created_at
        FROM contact_messages WHERE principal_id=$1 ORDER BY seq ASC`

	rows, err := r.pool.Query(ctx, query, principalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]domain.ContactMessage, 0)
	for rows.Next() {
		var message domain.ContactMessage
		if err := rows.Scan(
			&message.ID,
			&message.PrincipalID,
			&message.Name,
			&message.Email,
			&message.Message,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
