package httpx

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope es el sobre que usa toda respuesta del backend:
// {success, message, data, errors?, timestamp}.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	Errors    []string        `json:"errors,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// Page es el sobre de paginación server-driven de los endpoints de listado.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

// NewPage arma el sobre de página a partir del slice ya recortado.
func NewPage[T any](content []T, total int64, size, number int) Page[T] {
	if content == nil {
		content = make([]T, 0)
	}
	if size <= 0 {
		size = 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Size:          size,
		Number:        number,
	}
}

type envelopeOut struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	Data      any      `json:"data,omitempty"`
	Errors    []string `json:"errors,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// OK escribe data dentro del sobre estándar.
func OK(w http.ResponseWriter, status int, message string, data any) {
	writeEnvelope(w, status, envelopeOut{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Fail escribe un error con el message que el cliente muestra tal cual.
func Fail(w http.ResponseWriter, status int, message string, errs ...string) {
	writeEnvelope(w, status, envelopeOut{
		Success:   false,
		Message:   message,
		Errors:    errs,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelopeOut) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// Blob escribe una respuesta binaria (reportes, exports) sin sobre.
func Blob(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
