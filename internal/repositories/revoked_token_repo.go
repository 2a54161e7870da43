package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mbetts-dev/campusdocs/internal/database"
)

// RevokedTokenRepository is the durable deny-list for tokens invalidated
// before their natural expiry. Entries carry the token's own expiry so the
// periodic sweep can drop them once they can no longer match a live token.
type RevokedTokenRepository struct {
	pool *pgxpool.Pool
}

func NewRevokedTokenRepository(db *database.DB) *RevokedTokenRepository {
	return &RevokedTokenRepository{pool: db.Pool}
}

// Revoke inserts a deny-list entry. A duplicate token maps to
// models.ErrConflict via the unique constraint; callers decide whether that
// matters (logout treats it as already done).
func (r *RevokedTokenRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (token, expires_at, revoked_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, token, expiresAt, time.Now())
	if err != nil {
		return database.MapPostgresError(err)
	}

	return nil
}

// IsRevoked is a point lookup on the deny-list. A row deleted by a
// concurrent sweep reads as "not revoked", which is safe: a swept token has
// already expired and fails token validation anyway.
func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE token = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, token).Scan(&exists)
	if err != nil {
		return false, database.MapPostgresError(err)
	}

	return exists, nil
}

// DeleteExpired removes entries whose expiry has passed. Called by the
// background sweep.
func (r *RevokedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM revoked_tokens WHERE expires_at < $1`

	result, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}

	return result.RowsAffected(), nil
}
