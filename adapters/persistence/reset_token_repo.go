package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/techfolio/backend/internal/domain/user"
	"github.com/techfolio/backend/pkg/apperror"
)

type postgresResetTokenRepo struct {
	db *pgxpool.Pool
}

func NewPostgresResetTokenRepo(db *pgxpool.Pool) user.ResetTokenRepository {
	return &postgresResetTokenRepo{db: db}
}

func (r *postgresResetTokenRepo) Create(ctx context.Context, t *user.ResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to insert reset token", err)
	}
	return nil
}

func (r *postgresResetTokenRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*user.ResetToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at
		FROM password_reset_tokens
		WHERE token_hash = $1
	`
	t := &user.ResetToken{}
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("reset token", "")
		}
		return nil, apperror.NewInternal("failed to query reset token", err)
	}
	return t, nil
}

func (r *postgresResetTokenRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return apperror.NewInternal("failed to delete reset tokens", err)
	}
	return nil
}

// DeleteExpired is run opportunistically on every reset request, so no
// separate cleanup job is needed.
func (r *postgresResetTokenRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return apperror.NewInternal("failed to delete expired reset tokens", err)
	}
	return nil
}
