package client

import (
	"context"
	"net/http"
)

// AuthService cubre el ciclo de sesión contra /auth/*.
type AuthService struct {
	c *Client
}

// Login autentica y persiste la sesión resultante.
func (s *AuthService) Login(ctx context.Context, username, password string) (SessionUser, error) {
	var out TokenPair
	err := s.c.doPublic(ctx, http.MethodPost, "/auth/login",
		map[string]string{"username": username, "password": password}, &out)
	if err != nil {
		return SessionUser{}, err
	}
	user := out.User
	if err := s.c.session.Save(out.AccessToken, out.RefreshToken, &user); err != nil {
		return SessionUser{}, err
	}
	return user, nil
}

// RegisterInput es el alta de autoservicio del portal de propietarios.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Register crea la cuenta; no inicia sesión.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (SessionUser, error) {
	var out SessionUser
	err := s.c.doPublic(ctx, http.MethodPost, "/auth/register", in, &out)
	return out, err
}

// Logout avisa al backend con el mejor esfuerzo y siempre limpia la
// sesión local.
func (s *AuthService) Logout(ctx context.Context) error {
	refreshToken := s.c.session.RefreshToken()
	if refreshToken != "" {
		_ = s.c.do(ctx, http.MethodPost, "/auth/logout", nil,
			map[string]string{"refreshToken": refreshToken}, nil)
	}
	return s.c.session.Clear()
}

// Me valida la sesión persistida contra el backend. Un rechazo de
// autenticación limpia la sesión local (restore-on-load).
func (s *AuthService) Me(ctx context.Context) (SessionUser, error) {
	var out SessionUser
	err := s.c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out)
	if err != nil {
		if IsUnauthorized(err) {
			_ = s.c.session.Clear()
		}
		return SessionUser{}, err
	}
	return out, nil
}

// ForgotPassword pide instrucciones de recuperación; la respuesta es la
// misma exista o no el correo.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.c.doPublic(ctx, http.MethodPost, "/auth/forgot-password",
		map[string]string{"email": email}, nil)
}

// ResetPassword canjea el token de recuperación por una contraseña nueva.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.c.doPublic(ctx, http.MethodPost, "/auth/reset-password",
		map[string]string{"token": token, "newPassword": newPassword}, nil)
}

// ChangePassword cambia la contraseña de la sesión actual; el backend
// revoca las demás sesiones.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) error {
	return s.c.do(ctx, http.MethodPost, "/auth/change-password", nil,
		map[string]string{"currentPassword": current, "newPassword": next}, nil)
}
