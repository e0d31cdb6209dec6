package middleware

import (
	"net/http"
	"strings"

	"vetclinic-admin/internal/httpx"
)

// RequireAuth corta con 401 si el request no trae claims válidos.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Fail(w, http.StatusUnauthorized, "No autorizado")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles corta con 403 si el usuario no tiene ninguno de los roles.
// Acepta roles con o sin prefijo ROLE_.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok || strings.TrimSpace(claims.UserID) == "" {
				httpx.Fail(w, http.StatusUnauthorized, "No autorizado")
				return
			}
			for _, role := range roles {
				if claims.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.Fail(w, http.StatusForbidden, "Acceso denegado")
		})
	}
}
