package owners

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vetclinic-admin/internal/httpx"
)

// maxBulkSize es el tope de un fetch sin paginar.
const maxBulkSize = 1000

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/owners", func(or chi.Router) {
		or.Post("/", createHandler(svc))
		or.Get("/", listHandler(svc))
		or.Get("/page", pageHandler(svc))
		or.Get("/{ownerID}", getHandler(svc))
		or.Put("/{ownerID}", updateHandler(svc))
		or.Delete("/{ownerID}", deleteHandler(svc))
	})
}

type ownerRequest struct {
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Notes          string `json:"notes"`
	UserID         string `json:"userId"`
}

type ownerResponse struct {
	ID             string    `json:"id"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Notes          string    `json:"notes"`
	UserID         string    `json:"userId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ownerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		o, err := svc.Create(r.Context(), CreateInput{
			DocumentType:   req.DocumentType,
			DocumentNumber: req.DocumentNumber,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Email:          req.Email,
			Phone:          req.Phone,
			Address:        req.Address,
			City:           req.City,
			Notes:          req.Notes,
			UserID:         req.UserID,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "Documento y nombre son obligatorios")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		httpx.OK(w, http.StatusCreated, "Propietario creado exitosamente", toResponse(o))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	// Fetch masivo con tope; el cliente filtra/ordena en memoria.
	return func(w http.ResponseWriter, r *http.Request) {
		items, _, err := svc.List(r.Context(), ListFilter{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Size:   maxBulkSize,
		})
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		out := make([]ownerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toResponse(o))
		}
		httpx.OK(w, http.StatusOK, "", out)
	}
}

func pageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := pageParams(r, 0, 10)

		items, total, err := svc.List(r.Context(), ListFilter{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Page:   page,
			Size:   size,
		})
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		out := make([]ownerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toResponse(o))
		}
		httpx.OK(w, http.StatusOK, "", httpx.NewPage(out, total, size, page))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.GetByID(r.Context(), chi.URLParam(r, "ownerID"))
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "Propietario no encontrado")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponse(o))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DocumentType   *string `json:"documentType"`
			DocumentNumber *string `json:"documentNumber"`
			FirstName      *string `json:"firstName"`
			LastName       *string `json:"lastName"`
			Email          *string `json:"email"`
			Phone          *string `json:"phone"`
			Address        *string `json:"address"`
			City           *string `json:"city"`
			Notes          *string `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		o, err := svc.Update(r.Context(), chi.URLParam(r, "ownerID"), UpdateInput{
			DocumentType:   req.DocumentType,
			DocumentNumber: req.DocumentNumber,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Email:          req.Email,
			Phone:          req.Phone,
			Address:        req.Address,
			City:           req.City,
			Notes:          req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "Datos inválidos")
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Propietario no encontrado")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusOK, "Propietario actualizado exitosamente", toResponse(o))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "ownerID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Fail(w, http.StatusNotFound, "Propietario no encontrado")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "Propietario eliminado exitosamente", nil)
	}
}

func toResponse(o Owner) ownerResponse {
	return ownerResponse{
		ID:             o.ID,
		DocumentType:   string(o.DocumentType),
		DocumentNumber: o.DocumentNumber,
		FirstName:      o.FirstName,
		LastName:       o.LastName,
		FullName:       o.FullName(),
		Email:          o.Email,
		Phone:          o.Phone,
		Address:        o.Address,
		City:           o.City,
		Notes:          o.Notes,
		UserID:         o.UserID,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// pageParams lee ?page=&size= con defaults y tope.
func pageParams(r *http.Request, defPage, defSize int) (int, int) {
	page := defPage
	size := defSize
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxBulkSize {
			size = n
		}
	}
	return page, size
}
