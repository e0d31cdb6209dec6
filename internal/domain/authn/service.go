package authn

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vetclinic-admin/internal/domain/users"
	"vetclinic-admin/internal/platform/token"
)

var (
	ErrBadCredentials = errors.New("wrong username or password")
	ErrInactiveUser   = errors.New("user account is disabled")
	ErrInvalidSession = errors.New("refresh session is invalid or revoked")
	ErrInvalidReset   = errors.New("reset token is invalid, used or expired")
)

const resetTokenTTL = 30 * time.Minute

type Service struct {
	users    *users.Service
	tokens   *token.Manager
	sessions SessionRepository
	log      zerolog.Logger
	now      func() time.Time

	refreshTTL time.Duration
}

func NewService(us *users.Service, tm *token.Manager, sessions SessionRepository, refreshTTL time.Duration, log zerolog.Logger) *Service {
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:      us,
		tokens:     tm,
		sessions:   sessions,
		log:        log,
		now:        time.Now,
		refreshTTL: refreshTTL,
	}
}

// LoginResult acompaña el par de tokens con los datos del usuario que
// el cliente guarda en sesión.
type LoginResult struct {
	Pair token.Pair
	User users.User
}

// Login acepta username o correo como identificador.
func (s *Service) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return LoginResult{}, ErrBadCredentials
	}

	u, err := s.users.GetByUsername(ctx, identifier)
	if err != nil && strings.Contains(identifier, "@") {
		u, err = s.users.GetByEmail(ctx, identifier)
	}
	if err != nil {
		return LoginResult{}, ErrBadCredentials
	}
	if !token.CheckPassword(u.PasswordHash, password) {
		return LoginResult{}, ErrBadCredentials
	}
	if !u.Active {
		return LoginResult{}, ErrInactiveUser
	}

	pair, err := s.issueSession(ctx, u)
	if err != nil {
		return LoginResult{}, err
	}

	s.log.Info().Str("user_id", u.ID).Str("username", u.Username).Msg("login exitoso")
	return LoginResult{Pair: pair, User: u}, nil
}

// Refresh rota el refresh token: valida firma y jti activo, revoca la
// sesión usada y emite un par nuevo. Reusar un refresh viejo falla.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (LoginResult, error) {
	userID, jti, err := s.tokens.RefreshSubject(refreshToken)
	if err != nil {
		return LoginResult{}, ErrInvalidSession
	}

	sess, err := s.sessions.GetSession(ctx, jti)
	if err != nil || sess.Revoked || sess.UserID != userID {
		return LoginResult{}, ErrInvalidSession
	}
	if s.now().After(sess.ExpiresAt) {
		return LoginResult{}, ErrInvalidSession
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil || !u.Active {
		return LoginResult{}, ErrInvalidSession
	}

	if err := s.sessions.RevokeSession(ctx, jti); err != nil {
		return LoginResult{}, err
	}

	pair, err := s.issueSession(ctx, u)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Pair: pair, User: u}, nil
}

// Logout revoca la sesión del refresh token recibido. Un token ya
// inválido no es error: el efecto final es el mismo.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	_, jti, err := s.tokens.RefreshSubject(refreshToken)
	if err != nil {
		return nil
	}
	return s.sessions.RevokeSession(ctx, jti)
}

// RegisterOwner crea la cuenta de portal de un propietario.
func (s *Service) RegisterOwner(ctx context.Context, in users.CreateInput) (users.User, error) {
	in.Roles = []string{users.RoleOwner}
	return s.users.Create(ctx, in)
}

// ForgotPassword emite un token de recuperación. Si el correo no
// existe responde igual, para no revelar cuentas registradas; el token
// se devuelve para que la capa de notificaciones lo envíe.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil
	}

	reset := PasswordReset{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: s.now().Add(resetTokenTTL),
	}
	if err := s.sessions.SaveReset(ctx, reset); err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", u.ID).Msg("token de recuperación emitido")
	return reset.Token, nil
}

// ResetPassword consume el token de recuperación y revoca todas las
// sesiones del usuario.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	reset, err := s.sessions.ConsumeReset(ctx, strings.TrimSpace(resetToken))
	if err != nil {
		return ErrInvalidReset
	}
	if s.now().After(reset.ExpiresAt) {
		return ErrInvalidReset
	}

	if err := s.users.ResetPassword(ctx, reset.UserID, newPassword); err != nil {
		return err
	}
	return s.sessions.RevokeUserSessions(ctx, reset.UserID)
}

// ChangePassword delega en users y revoca las demás sesiones.
func (s *Service) ChangePassword(ctx context.Context, userID, current, newPassword string) error {
	if err := s.users.ChangePassword(ctx, userID, current, newPassword); err != nil {
		return err
	}
	return s.sessions.RevokeUserSessions(ctx, userID)
}

// Me devuelve el usuario autenticado.
func (s *Service) Me(ctx context.Context, userID string) (users.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) issueSession(ctx context.Context, u users.User) (token.Pair, error) {
	pair, err := s.tokens.IssuePair(u.ID, u.Username, u.Roles)
	if err != nil {
		return token.Pair{}, err
	}
	err = s.sessions.SaveSession(ctx, RefreshSession{
		JTI:       pair.RefreshJTI,
		UserID:    u.ID,
		ExpiresAt: s.now().Add(s.refreshTTL),
		CreatedAt: s.now(),
	})
	if err != nil {
		return token.Pair{}, err
	}
	return pair, nil
}
