package postgres

import (
	"context"
	"errors"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TokenBlacklistRepo struct {
	db *pgxpool.Pool
}

func NewTokenBlacklistRepo(db *pgxpool.Pool) *TokenBlacklistRepo {
	return &TokenBlacklistRepo{db: db}
}

func (r *TokenBlacklistRepo) Add(ctx context.Context, record *models.BlacklistedToken) error {
	if record == nil {
		return errors.New("blacklisted token record is nil")
	}

	const q = `
		INSERT INTO token_blacklist (id, user_id, token_hash, expires_at)
		VALUES ($1, $2, $3, $4);
	`

	_, err := TxOrDB(ctx, r.db).Exec(ctx, q, record.ID, record.UserID, record.TokenHash, record.ExpiresAt)
	return err
}

func (r *TokenBlacklistRepo) Exists(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM token_blacklist WHERE id = $1
		);
	`

	var exists bool
	if err := TxOrDB(ctx, r.db).QueryRow(ctx, q, tokenID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// DeleteExpired removes rows whose token would by now be rejected on
// expiry alone. Intended for a periodic cleanup job.
func (r *TokenBlacklistRepo) DeleteExpired(ctx context.Context) (int64, error) {
	const q = `
		DELETE FROM token_blacklist
		WHERE expires_at < now();
	`

	tag, err := TxOrDB(ctx, r.db).Exec(ctx, q)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
