package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActionTokenKind distinguishes the single-use token flows.
type ActionTokenKind string

const (
	ActionTokenEmailVerification ActionTokenKind = "EMAIL_VERIFICATION"
	ActionTokenPasswordReset     ActionTokenKind = "PASSWORD_RESET"
)

// ActionToken is a persisted single-use, expiring token bound to an identity.
type ActionToken struct {
	ID        string
	UserID    string
	Kind      ActionTokenKind
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// ActionTokenRepository manages verification and reset token persistence.
type ActionTokenRepository interface {
	Create(ctx context.Context, token *ActionToken) error
	GetByToken(ctx context.Context, kind ActionTokenKind, token string) (*ActionToken, error)
	MarkUsed(ctx context.Context, id string) error
}

type actionTokenRepository struct {
	pool *pgxpool.Pool
}

// NewActionTokenRepository constructs repository.
func NewActionTokenRepository(pool *pgxpool.Pool) ActionTokenRepository {
	return &actionTokenRepository{pool: pool}
}

func (r *actionTokenRepository) Create(ctx context.Context, token *ActionToken) error {
	const query = `
        INSERT INTO action_tokens (user_id, kind, token, expires_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		token.UserID,
		token.Kind,
		token.Token,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *actionTokenRepository) GetByToken(ctx context.Context, kind ActionTokenKind, tokenStr string) (*ActionToken, error) {
	const query = `
        SELECT id, user_id, kind, token, expires_at, used_at, created_at
        FROM action_tokens WHERE kind=$1 AND token=$2`
	var token ActionToken
	if err := r.pool.QueryRow(ctx, query, kind, tokenStr).Scan(
		&token.ID,
		&token.UserID,
		&token.Kind,
		&token.Token,
		&token.ExpiresAt,
		&token.UsedAt,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *actionTokenRepository) MarkUsed(ctx context.Context, id string) error {
	const query = `
        UPDATE action_tokens SET used_at=NOW()
        WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
