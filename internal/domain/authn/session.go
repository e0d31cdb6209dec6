package authn

import (
	"context"
	"time"
)

// RefreshSession es el registro del lado servidor de un refresh token
// emitido. El jti rota en cada refresh; un jti revocado o ya rotado no
// vuelve a aceptar refresh.
type RefreshSession struct {
	JTI       string
	UserID    string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// PasswordReset es un token de un solo uso para recuperar la contraseña.
type PasswordReset struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	Used      bool
}

type SessionRepository interface {
	SaveSession(ctx context.Context, s RefreshSession) error
	GetSession(ctx context.Context, jti string) (RefreshSession, error)
	RevokeSession(ctx context.Context, jti string) error
	RevokeUserSessions(ctx context.Context, userID string) error

	SaveReset(ctx context.Context, r PasswordReset) error
	// ConsumeReset devuelve el reset y lo marca como usado en la misma
	// operación; un token usado o vencido devuelve error.
	ConsumeReset(ctx context.Context, token string) (PasswordReset, error)
}
