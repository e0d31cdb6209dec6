package memory

import (
	"context"
	"errors"
	"sync"

	"vetclinic-admin/internal/domain/authn"
)

type sessionsRepo struct {
	mu       sync.Mutex
	sessions map[string]authn.RefreshSession
	resets   map[string]authn.PasswordReset
}

func NewSessionsRepo() authn.SessionRepository {
	return &sessionsRepo{
		sessions: make(map[string]authn.RefreshSession),
		resets:   make(map[string]authn.PasswordReset),
	}
}

func (r *sessionsRepo) SaveSession(_ context.Context, s authn.RefreshSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.JTI] = s
	return nil
}

func (r *sessionsRepo) GetSession(_ context.Context, jti string) (authn.RefreshSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[jti]
	if !ok {
		return authn.RefreshSession{}, errors.New("session not found")
	}
	return s, nil
}

func (r *sessionsRepo) RevokeSession(_ context.Context, jti string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[jti]
	if !ok {
		return nil
	}
	s.Revoked = true
	r.sessions[jti] = s
	return nil
}

func (r *sessionsRepo) RevokeUserSessions(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for jti, s := range r.sessions {
		if s.UserID == userID {
			s.Revoked = true
			r.sessions[jti] = s
		}
	}
	return nil
}

func (r *sessionsRepo) SaveReset(_ context.Context, reset authn.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets[reset.Token] = reset
	return nil
}

func (r *sessionsRepo) ConsumeReset(_ context.Context, token string) (authn.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reset, ok := r.resets[token]
	if !ok || reset.Used {
		return authn.PasswordReset{}, errors.New("reset token not found or used")
	}
	reset.Used = true
	r.resets[token] = reset
	return reset, nil
}
