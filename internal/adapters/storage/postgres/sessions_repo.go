package postgres

import (
	"context"
	"database/sql"

	"vetclinic-admin/internal/domain/authn"
)

type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

func (r *SessionsRepo) SaveSession(ctx context.Context, s authn.RefreshSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_sessions (jti, user_id, expires_at, revoked, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, s.JTI, s.UserID, s.ExpiresAt, s.Revoked, s.CreatedAt)
	return err
}

func (r *SessionsRepo) GetSession(ctx context.Context, jti string) (authn.RefreshSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT jti, user_id, expires_at, revoked, created_at
		FROM refresh_sessions
		WHERE jti = $1
	`, jti)

	var s authn.RefreshSession
	err := row.Scan(&s.JTI, &s.UserID, &s.ExpiresAt, &s.Revoked, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return authn.RefreshSession{}, ErrNotFound
	}
	if err != nil {
		return authn.RefreshSession{}, err
	}
	return s, nil
}

func (r *SessionsRepo) RevokeSession(ctx context.Context, jti string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE refresh_sessions SET revoked = true WHERE jti = $1
	`, jti)
	return err
}

func (r *SessionsRepo) RevokeUserSessions(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE refresh_sessions SET revoked = true WHERE user_id = $1
	`, userID)
	return err
}

func (r *SessionsRepo) SaveReset(ctx context.Context, reset authn.PasswordReset) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO password_resets (token, user_id, expires_at, used)
		VALUES ($1,$2,$3,$4)
	`, reset.Token, reset.UserID, reset.ExpiresAt, reset.Used)
	return err
}

func (r *SessionsRepo) ConsumeReset(ctx context.Context, token string) (authn.PasswordReset, error) {
	// Marcar y leer en una sola sentencia evita el doble uso en carrera.
	row := r.db.QueryRowContext(ctx, `
		UPDATE password_resets
		SET used = true
		WHERE token = $1 AND NOT used
		RETURNING token, user_id, expires_at, used
	`, token)

	var reset authn.PasswordReset
	err := row.Scan(&reset.Token, &reset.UserID, &reset.ExpiresAt, &reset.Used)
	if err == sql.ErrNoRows {
		return authn.PasswordReset{}, ErrNotFound
	}
	if err != nil {
		return authn.PasswordReset{}, err
	}
	return reset, nil
}
