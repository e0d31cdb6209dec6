package token

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vetclinic-admin/internal/ports/auth"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongKind    = errors.New("wrong token kind")
)

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// Manager emite y verifica el par access/refresh en HS256.
// Implementa auth.AuthVerifier para el middleware del server.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Pair es el resultado de login/refresh.
type Pair struct {
	AccessToken  string
	RefreshToken string
	RefreshJTI   string
	ExpiresIn    int64 // segundos del access token
}

// IssuePair genera access+refresh para el usuario.
// El refresh lleva jti para poder invalidarlo server-side (rotación/logout).
func (m *Manager) IssuePair(userID, username string, roles []string) (Pair, error) {
	now := m.now()
	jti := uuid.NewString()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"roles":    roles,
		"typ":      kindAccess,
		"iat":      now.Unix(),
		"exp":      now.Add(m.accessTTL).Unix(),
	})
	accessStr, err := access.SignedString(m.secret)
	if err != nil {
		return Pair{}, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"typ": kindRefresh,
		"jti": jti,
		"iat": now.Unix(),
		"exp": now.Add(m.refreshTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString(m.secret)
	if err != nil {
		return Pair{}, err
	}

	return Pair{
		AccessToken:  accessStr,
		RefreshToken: refreshStr,
		RefreshJTI:   jti,
		ExpiresIn:    int64(m.accessTTL / time.Second),
	}, nil
}

// Verify valida un access token y devuelve claims.
func (m *Manager) Verify(_ context.Context, tokenStr string) (auth.Claims, error) {
	claims, err := m.parse(tokenStr, kindAccess)
	if err != nil {
		return auth.Claims{}, err
	}

	out := auth.Claims{
		UserID:   asString(claims["sub"]),
		Username: asString(claims["username"]),
	}
	if raw, ok := claims["roles"].([]any); ok {
		for _, r := range raw {
			if s := asString(r); s != "" {
				out.Roles = append(out.Roles, s)
			}
		}
	}
	if out.UserID == "" {
		return auth.Claims{}, ErrInvalidToken
	}
	return out, nil
}

// RefreshSubject valida un refresh token y devuelve (userID, jti).
func (m *Manager) RefreshSubject(tokenStr string) (string, string, error) {
	claims, err := m.parse(tokenStr, kindRefresh)
	if err != nil {
		return "", "", err
	}
	sub := asString(claims["sub"])
	jti := asString(claims["jti"])
	if sub == "" || jti == "" {
		return "", "", ErrInvalidToken
	}
	return sub, jti, nil
}

func (m *Manager) parse(tokenStr, kind string) (jwt.MapClaims, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if asString(claims["typ"]) != kind {
		return nil, ErrWrongKind
	}
	return claims, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
