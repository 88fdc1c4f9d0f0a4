package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/salusclinic/booking-api/internal/repository"
)

type tokenRepository struct {
	BaseRepository
}

func NewTokenRepository(base BaseRepository) repository.TokenRepository {
	return &tokenRepository{base}
}

func (r *tokenRepository) StoreVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	return r.storeToken(ctx, userID, token, "verification", expiry)
}

func (r *tokenRepository) ValidateVerificationToken(ctx context.Context, token string) (uuid.UUID, error) {
	return r.validateToken(ctx, token, "verification")
}

func (r *tokenRepository) InvalidateVerificationToken(ctx context.Context, token string) error {
	return r.invalidateToken(ctx, token, "verification")
}

func (r *tokenRepository) StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	return r.storeToken(ctx, userID, token, "reset", expiry)
}

func (r *tokenRepository) ValidateResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	return r.validateToken(ctx, token, "reset")
}

func (r *tokenRepository) InvalidateResetToken(ctx context.Context, token string) error {
	return r.invalidateToken(ctx, token, "reset")
}

func (r *tokenRepository) storeToken(ctx context.Context, userID uuid.UUID, token, tokenType string, expiry time.Time) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO user_tokens (user_id, token, type, expires_at, created_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (user_id, type) DO UPDATE
			SET token = $2, expires_at = $4, used_at = NULL, updated_at = NOW()
		`
		_, err := tx.ExecContext(ctx, query, userID, token, tokenType, expiry)
		return err
	})
}

func (r *tokenRepository) validateToken(ctx context.Context, token, tokenType string) (uuid.UUID, error) {
	query := `
		SELECT user_id
		FROM user_tokens
		WHERE token = $1
		AND type = $2
		AND expires_at > NOW()
		AND used_at IS NULL
	`

	var userID uuid.UUID
	err := r.GetDB().GetContext(ctx, &userID, query, token, tokenType)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid or expired token")
	}

	return userID, nil
}

func (r *tokenRepository) invalidateToken(ctx context.Context, token, tokenType string) error {
	query := `
		UPDATE user_tokens
		SET used_at = NOW()
		WHERE token = $1
		AND type = $2
	`

	result, err := r.GetDB().ExecContext(ctx, query, token, tokenType)
	if err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("token not found or already used")
	}

	return nil
}
