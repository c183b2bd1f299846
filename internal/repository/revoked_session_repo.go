package repository

import (
	"context"
	"time"
)

type RevokedSessionRepository struct {
	db DBTX
}

func NewRevokedSessionRepository(db DBTX) *RevokedSessionRepository {
	return &RevokedSessionRepository{db: db}
}

// Revoke is idempotent; revoking a session twice keeps the first record.
func (r *RevokedSessionRepository) Revoke(
	ctx context.Context,
	sessionID string,
	userID string,
	expiresAt time.Time,
) error {
	query := `
		INSERT INTO revoked_sessions (session_id, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO NOTHING
	`
	var expires *time.Time
	if !expiresAt.IsZero() {
		utc := expiresAt.UTC()
		expires = &utc
	}
	_, err := r.db.Exec(ctx, query, sessionID, userID, expires)
	return err
}

func (r *RevokedSessionRepository) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_sessions WHERE session_id = $1)`
	var revoked bool
	if err := r.db.QueryRow(ctx, query, sessionID).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}

// PurgeExpired drops records whose token could no longer be presented anyway.
func (r *RevokedSessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM revoked_sessions WHERE expires_at IS NOT NULL AND expires_at < $1`,
		now.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
