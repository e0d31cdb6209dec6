package authn

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vetclinic-admin/internal/domain/users"
	"vetclinic-admin/internal/httpx"
	"vetclinic-admin/internal/middleware"
)

// RegisterPublicRoutes monta los endpoints sin autenticación. El rate
// limiter de login lo aplica el router por fuera.
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(svc))
		ar.Post("/refresh-token", refreshHandler(svc))
		ar.Post("/register", registerHandler(svc))
		ar.Post("/forgot-password", forgotPasswordHandler(svc))
		ar.Post("/reset-password", resetPasswordHandler(svc))
	})
}

// RegisterProtectedRoutes monta los endpoints que exigen sesión.
func RegisterProtectedRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/logout", logoutHandler(svc))
	r.Get("/auth/me", meHandler(svc))
	r.Post("/auth/change-password", changePasswordHandler(svc))
}

type tokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         userResponse `json:"user"`
}

type userResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"fullName"`
	Roles       []string `json:"roles"`
	PrimaryRole string   `json:"primaryRole"`
}

func toTokenResponse(res LoginResult) tokenResponse {
	return tokenResponse{
		AccessToken:  res.Pair.AccessToken,
		RefreshToken: res.Pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    res.Pair.ExpiresIn,
		User:         toUserResponse(res.User),
	}
}

func toUserResponse(u users.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName(),
		Roles:       u.Roles,
		PrimaryRole: users.PrimaryRole(u.Roles),
	}
}

func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		res, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInactiveUser):
				httpx.Fail(w, http.StatusForbidden, "La cuenta está deshabilitada")
			case errors.Is(err, ErrBadCredentials):
				httpx.Fail(w, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusOK, "Inicio de sesión exitoso", toTokenResponse(res))
	}
}

func refreshHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		res, err := svc.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			if errors.Is(err, ErrInvalidSession) {
				httpx.Fail(w, http.StatusUnauthorized, "La sesión expiró, inicie sesión de nuevo")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		httpx.OK(w, http.StatusOK, "Sesión renovada", toTokenResponse(res))
	}
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username  string `json:"username"`
			Email     string `json:"email"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Password  string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		u, err := svc.RegisterOwner(r.Context(), users.CreateInput{
			Username:  req.Username,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Password:  req.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, users.ErrDuplicate):
				httpx.Fail(w, http.StatusConflict, "El usuario o el correo ya están registrados")
			case errors.Is(err, users.ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "Usuario, correo y contraseña de mínimo 6 caracteres son obligatorios")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusCreated, "Registro exitoso", toUserResponse(u))
	}
}

func forgotPasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		if strings.TrimSpace(req.Email) == "" {
			httpx.Fail(w, http.StatusBadRequest, "email es obligatorio")
			return
		}

		if _, err := svc.ForgotPassword(r.Context(), req.Email); err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		// La respuesta es idéntica exista o no la cuenta.
		httpx.OK(w, http.StatusOK, "Si el correo está registrado recibirá instrucciones", nil)
	}
}

func resetPasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token       string `json:"token"`
			NewPassword string `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
			switch {
			case errors.Is(err, ErrInvalidReset):
				httpx.Fail(w, http.StatusUnauthorized, "El enlace de recuperación no es válido o ya expiró")
			case errors.Is(err, users.ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "La contraseña debe tener mínimo 6 caracteres")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusOK, "Contraseña restablecida exitosamente", nil)
	}
}

func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		// El cuerpo es opcional: sin refresh token solo se limpia el
		// lado cliente.
		_ = json.NewDecoder(r.Body).Decode(&req)

		if err := svc.Logout(r.Context(), req.RefreshToken); err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "Sesión cerrada", nil)
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Fail(w, http.StatusUnauthorized, "No autorizado")
			return
		}

		u, err := svc.Me(r.Context(), claims.UserID)
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		httpx.OK(w, http.StatusOK, "", toUserResponse(u))
	}
}

func changePasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Fail(w, http.StatusUnauthorized, "No autorizado")
			return
		}

		var req struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		if err := svc.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
			switch {
			case errors.Is(err, users.ErrBadCredential):
				httpx.Fail(w, http.StatusUnauthorized, "La contraseña actual no es correcta")
			case errors.Is(err, users.ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "La contraseña debe tener mínimo 6 caracteres")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusOK, "Contraseña actualizada exitosamente", nil)
	}
}
