package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired se devuelve cuando el refresh falla y la sesión
// local quedó limpia; el llamador debe volver al login.
var ErrSessionExpired = errors.New("la sesión expiró, inicie sesión de nuevo")

// APIError es un rechazo del backend. Message llega tal cual del sobre
// y se muestra sin traducir.
type APIError struct {
	Status  int
	Message string
	Errors  []string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("el servidor respondió %d", e.Status)
}

// IsUnauthorized reporta si err es un 401 del backend o una sesión expirada.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrSessionExpired) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reporta si err es un 404 del backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsConflict reporta si err es un 409 del backend.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}
