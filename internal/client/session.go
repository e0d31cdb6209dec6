package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"vetclinic-admin/internal/domain/users"
)

// SessionState es el estado del ciclo de vida de la sesión local.
type SessionState string

const (
	StateLoading       SessionState = "loading"
	StateAuthenticated SessionState = "authenticated"
	StateAnonymous     SessionState = "anonymous"
)

// SessionUser es el usuario tal como lo persiste el cliente.
type SessionUser struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"fullName"`
	Roles       []string `json:"roles"`
	PrimaryRole string   `json:"primaryRole"`
}

// sessionFile es el formato en disco; las claves replican las del
// almacenamiento del cliente original.
type sessionFile struct {
	Token        string       `json:"vetclinic_token"`
	RefreshToken string       `json:"vetclinic_refresh_token"`
	User         *SessionUser `json:"vetclinic_user,omitempty"`
}

// SessionStore guarda la sesión en un archivo JSON. Todas las
// operaciones son seguras para uso concurrente.
type SessionStore struct {
	mu    sync.RWMutex
	path  string
	state SessionState
	data  sessionFile
}

// DefaultSessionPath es ~/.vetclinic/session.json.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".vetclinic", "session.json"), nil
}

// NewSessionStore abre (o inicializa) el archivo de sesión. Un archivo
// inexistente o corrupto deja la sesión anónima, no es un error.
func NewSessionStore(path string) (*SessionStore, error) {
	s := &SessionStore{path: path, state: StateLoading}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.state = StateAnonymous
		return s, nil
	case err != nil:
		return nil, err
	}

	if err := json.Unmarshal(raw, &s.data); err != nil || s.data.Token == "" {
		s.data = sessionFile{}
		s.state = StateAnonymous
		return s, nil
	}
	s.state = StateAuthenticated
	return s, nil
}

// State devuelve el estado actual.
func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token devuelve el access token vigente, o "" si no hay sesión.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Token
}

// RefreshToken devuelve el refresh token vigente, o "".
func (s *SessionStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.RefreshToken
}

// User devuelve el usuario persistido, o nil si no hay sesión.
func (s *SessionStore) User() *SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.User == nil {
		return nil
	}
	u := *s.data.User
	return &u
}

// Save persiste la sesión completa y pasa a authenticated. Deriva el
// rol principal si no viene calculado.
func (s *SessionStore) Save(token, refreshToken string, user *SessionUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user != nil && user.PrimaryRole == "" {
		user.PrimaryRole = users.PrimaryRole(user.Roles)
	}
	s.data = sessionFile{Token: token, RefreshToken: refreshToken, User: user}
	s.state = StateAuthenticated
	return s.flush()
}

// SetTokens reemplaza el par de tokens conservando el usuario.
func (s *SessionStore) SetTokens(token, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Token = token
	s.data.RefreshToken = refreshToken
	s.state = StateAuthenticated
	return s.flush()
}

// Clear borra la sesión local y pasa a anonymous.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = sessionFile{}
	s.state = StateAnonymous
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *SessionStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}
