package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists/validates refresh tokens for the owner session
// (single 'token_hash' column; the raw token never touches the database).
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh inserts a refresh token hash row.
func (r *TokenRepo) StoreRefresh(ctx context.Context, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (token_hash, expires_at) VALUES (?,?)",
		tokenHash, exp.UTC().Format(timestampLayout))
	return err
}

// ValidateRefresh returns nil if a non-revoked, non-expired token exists.
// Any other outcome is reported as sql.ErrNoRows so callers treat bad,
// revoked and expired tokens alike.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) error {
	var (
		expiresAt string
		revokedAt sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&expiresAt, &revokedAt)
	if err != nil {
		return err
	}
	if revokedAt.Valid {
		return sql.ErrNoRows
	}
	exp, err := parseStoredTime(expiresAt)
	if err != nil {
		return err
	}
	if time.Now().UTC().After(exp) {
		return sql.ErrNoRows
	}
	return nil
}

// RevokeByHash marks a token as revoked.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=? WHERE token_hash=? AND revoked_at IS NULL",
		time.Now().UTC().Format(timestampLayout), tokenHash)
	return err
}

// RevokeAll revokes every active refresh token, ending all owner sessions.
func (r *TokenRepo) RevokeAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=? WHERE revoked_at IS NULL",
		time.Now().UTC().Format(timestampLayout))
	return err
}
