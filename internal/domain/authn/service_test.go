package authn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"vetclinic-admin/internal/domain/users"
	"vetclinic-admin/internal/platform/token"
)

type memUserRepo struct {
	byID map[string]users.User
}

func (r *memUserRepo) Create(_ context.Context, u users.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *memUserRepo) Update(_ context.Context, u users.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return users.ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (users.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (users.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (users.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *memUserRepo) List(_ context.Context, _ users.ListFilter) ([]users.User, int64, error) {
	out := make([]users.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

type memSessionRepo struct {
	sessions map[string]RefreshSession
	resets   map[string]PasswordReset
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{
		sessions: make(map[string]RefreshSession),
		resets:   make(map[string]PasswordReset),
	}
}

func (r *memSessionRepo) SaveSession(_ context.Context, s RefreshSession) error {
	r.sessions[s.JTI] = s
	return nil
}

func (r *memSessionRepo) GetSession(_ context.Context, jti string) (RefreshSession, error) {
	s, ok := r.sessions[jti]
	if !ok {
		return RefreshSession{}, ErrInvalidSession
	}
	return s, nil
}

func (r *memSessionRepo) RevokeSession(_ context.Context, jti string) error {
	s, ok := r.sessions[jti]
	if !ok {
		return nil
	}
	s.Revoked = true
	r.sessions[jti] = s
	return nil
}

func (r *memSessionRepo) RevokeUserSessions(_ context.Context, userID string) error {
	for jti, s := range r.sessions {
		if s.UserID == userID {
			s.Revoked = true
			r.sessions[jti] = s
		}
	}
	return nil
}

func (r *memSessionRepo) SaveReset(_ context.Context, reset PasswordReset) error {
	r.resets[reset.Token] = reset
	return nil
}

func (r *memSessionRepo) ConsumeReset(_ context.Context, tkn string) (PasswordReset, error) {
	reset, ok := r.resets[tkn]
	if !ok || reset.Used {
		return PasswordReset{}, ErrInvalidReset
	}
	reset.Used = true
	r.resets[tkn] = reset
	return reset, nil
}

func newAuthService(t *testing.T) *Service {
	t.Helper()
	us := users.NewService(&memUserRepo{byID: make(map[string]users.User)})
	tm := token.NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	svc := NewService(us, tm, newMemSessionRepo(), 7*24*time.Hour, zerolog.Nop())

	if _, err := us.Create(context.Background(), users.CreateInput{
		Username: "vet1",
		Email:    "vet1@clinic.test",
		Password: "secret1",
		Roles:    []string{"VETERINARIAN"},
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return svc
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)

	res, err := svc.Login(context.Background(), "vet1", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Pair.AccessToken == "" || res.Pair.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", res.Pair)
	}
	if res.User.Username != "vet1" {
		t.Fatalf("user = %+v", res.User)
	}

	if _, err := svc.Login(context.Background(), "vet1", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("wrong password err = %v, want ErrBadCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "secret1"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("unknown user err = %v, want ErrBadCredentials", err)
	}
}

func TestRefresh_RotatesSession(t *testing.T) {
	svc := newAuthService(t)

	res, err := svc.Login(context.Background(), "vet1", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	renewed, err := svc.Refresh(context.Background(), res.Pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if renewed.Pair.RefreshToken == res.Pair.RefreshToken {
		t.Fatalf("expected a rotated refresh token")
	}

	// El refresh viejo quedó revocado; reusarlo falla.
	if _, err := svc.Refresh(context.Background(), res.Pair.RefreshToken); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("reused refresh err = %v, want ErrInvalidSession", err)
	}

	// El nuevo sigue siendo válido.
	if _, err := svc.Refresh(context.Background(), renewed.Pair.RefreshToken); err != nil {
		t.Fatalf("Refresh with rotated token: %v", err)
	}
}

func TestLogout_RevokesRefresh(t *testing.T) {
	svc := newAuthService(t)

	res, err := svc.Login(context.Background(), "vet1", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), res.Pair.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), res.Pair.RefreshToken); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("refresh after logout err = %v, want ErrInvalidSession", err)
	}
}

func TestResetPassword_Flow(t *testing.T) {
	svc := newAuthService(t)

	tkn, err := svc.ForgotPassword(context.Background(), "vet1@clinic.test")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if tkn == "" {
		t.Fatalf("expected a reset token for a registered email")
	}

	// Correo no registrado: misma respuesta, sin token.
	other, err := svc.ForgotPassword(context.Background(), "ghost@clinic.test")
	if err != nil || other != "" {
		t.Fatalf("unregistered email = (%q, %v), want empty token and nil error", other, err)
	}

	if err := svc.ResetPassword(context.Background(), tkn, "newpass1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	// Token de un solo uso.
	if err := svc.ResetPassword(context.Background(), tkn, "another1"); !errors.Is(err, ErrInvalidReset) {
		t.Fatalf("reused reset err = %v, want ErrInvalidReset", err)
	}

	if _, err := svc.Login(context.Background(), "vet1", "secret1"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("old password still accepted")
	}
	if _, err := svc.Login(context.Background(), "vet1", "newpass1"); err != nil {
		t.Fatalf("Login with new password: %v", err)
	}
}
