package clinicservices

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

const maxBulkSize = 1000

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/services", func(sr chi.Router) {
		sr.Post("/", createHandler(svc))
		sr.Get("/", listHandler(svc))
		sr.Get("/page", pageHandler(svc))
		sr.Get("/active", activeHandler(svc))
		sr.Get("/{serviceID}", getHandler(svc))
		sr.Put("/{serviceID}", updateHandler(svc))
		sr.Patch("/{serviceID}/toggle-active", toggleHandler(svc))
		sr.Delete("/{serviceID}", deleteHandler(svc))
	})
}

type serviceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

type serviceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req serviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		cs, err := svc.Create(r.Context(), CreateInput{
			Name:            req.Name,
			Description:     req.Description,
			Category:        req.Category,
			Price:           req.Price,
			DurationMinutes: req.DurationMinutes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "Nombre y precio válidos son obligatorios")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		httpx.OK(w, http.StatusCreated, "Servicio creado exitosamente", toResponse(cs))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := ListFilter{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Size:   maxBulkSize,
		}
		if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
			f.Category = NormalizeCategory(v)
		}

		items, _, err := svc.List(r.Context(), f)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func pageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := 0, 10
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

		items, total, err := svc.List(r.Context(), ListFilter{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Page:   page,
			Size:   size,
		})
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", httpx.NewPage(toResponses(items), total, size, page))
	}
}

func activeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Active(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := svc.GetByID(r.Context(), chi.URLParam(r, "serviceID"))
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "Servicio no encontrado")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponse(cs))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name            *string  `json:"name"`
			Description     *string  `json:"description"`
			Category        *string  `json:"category"`
			Price           *float64 `json:"price"`
			DurationMinutes *int     `json:"durationMinutes"`
			Active          *bool    `json:"active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		cs, err := svc.Update(r.Context(), chi.URLParam(r, "serviceID"), UpdateInput{
			Name:            req.Name,
			Description:     req.Description,
			Category:        req.Category,
			Price:           req.Price,
			DurationMinutes: req.DurationMinutes,
			Active:          req.Active,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "Datos inválidos")
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Servicio no encontrado")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusOK, "Servicio actualizado exitosamente", toResponse(cs))
	}
}

func toggleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := svc.ToggleActive(r.Context(), chi.URLParam(r, "serviceID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Fail(w, http.StatusNotFound, "Servicio no encontrado")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "Disponibilidad actualizada", toResponse(cs))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "serviceID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Fail(w, http.StatusNotFound, "Servicio no encontrado")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "Servicio eliminado exitosamente", nil)
	}
}

func toResponse(cs ClinicService) serviceResponse {
	return serviceResponse{
		ID:              cs.ID,
		Name:            cs.Name,
		Description:     cs.Description,
		Category:        string(cs.Category),
		Price:           cs.Price,
		DurationMinutes: cs.DurationMinutes,
		Active:          cs.Active,
		CreatedAt:       cs.CreatedAt,
		UpdatedAt:       cs.UpdatedAt,
	}
}

func toResponses(items []ClinicService) []serviceResponse {
	out := make([]serviceResponse, 0, len(items))
	for _, cs := range items {
		out = append(out, toResponse(cs))
	}
	return out
}
