package patients

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
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", createHandler(svc))
		pr.Get("/", listHandler(svc))
		pr.Get("/page", pageHandler(svc))
		pr.Get("/{patientID}", getHandler(svc))
		pr.Put("/{patientID}", updateHandler(svc))
		pr.Delete("/{patientID}", deleteHandler(svc))
	})

	// Mascotas de un propietario (para el formulario de citas y el portal).
	r.Get("/owners/{ownerID}/patients", listByOwnerHandler(svc))
}

type patientRequest struct {
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Breed     string  `json:"breed"`
	Gender    string  `json:"gender"`
	BirthDate string  `json:"birthDate"` // YYYY-MM-DD opcional
	WeightKg  float64 `json:"weight"`
	Microchip string  `json:"microchip"`
	OwnerID   string  `json:"ownerId"`
	Notes     string  `json:"notes"`
}

type patientResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Age       int        `json:"age"`
	WeightKg  float64    `json:"weight"`
	Microchip string     `json:"microchip"`
	OwnerID   string     `json:"ownerId"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req patientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "birthDate debe ser YYYY-MM-DD")
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Gender:    req.Gender,
			BirthDate: bd,
			WeightKg:  req.WeightKg,
			Microchip: req.Microchip,
			OwnerID:   req.OwnerID,
			Notes:     req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "Nombre y propietario son obligatorios")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		httpx.OK(w, http.StatusCreated, "Paciente registrado exitosamente", toResponse(p, time.Now()))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, _, err := svc.List(r.Context(), ListFilter{
			Search:  strings.TrimSpace(r.URL.Query().Get("search")),
			Species: strings.TrimSpace(r.URL.Query().Get("species")),
			Size:    maxBulkSize,
		})
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func pageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := pageParams(r, 0, 10)

		items, total, err := svc.List(r.Context(), ListFilter{
			Search:  strings.TrimSpace(r.URL.Query().Get("search")),
			Species: strings.TrimSpace(r.URL.Query().Get("species")),
			Page:    page,
			Size:    size,
		})
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", httpx.NewPage(toResponses(items), total, size, page))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "Paciente no encontrado")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponse(p, time.Now()))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Para soportar "birthDate": null (limpiar) vs "no enviado",
		// detectamos presencia decodificando a map primero.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		var req struct {
			Name      *string  `json:"name"`
			Species   *string  `json:"species"`
			Breed     *string  `json:"breed"`
			Gender    *string  `json:"gender"`
			BirthDate *string  `json:"birthDate"`
			WeightKg  *float64 `json:"weight"`
			Microchip *string  `json:"microchip"`
			Notes     *string  `json:"notes"`
		}
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
				return
			}
		}

		in := UpdateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Gender:    req.Gender,
			WeightKg:  req.WeightKg,
			Microchip: req.Microchip,
			Notes:     req.Notes,
		}

		if v, present := raw["birthDate"]; present {
			if string(v) == "null" {
				in.ClearBirthDate = true
			} else if req.BirthDate != nil {
				t, err := time.Parse("2006-01-02", *req.BirthDate)
				if err != nil {
					httpx.Fail(w, http.StatusBadRequest, "birthDate debe ser YYYY-MM-DD o null")
					return
				}
				in.BirthDate = &t
			}
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "patientID"), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "Datos inválidos")
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Paciente no encontrado")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusOK, "Paciente actualizado exitosamente", toResponse(p, time.Now()))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "patientID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Fail(w, http.StatusNotFound, "Paciente no encontrado")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "Paciente eliminado exitosamente", nil)
	}
}

func listByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "ownerID"))
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func toResponse(p Patient, now time.Time) patientResponse {
	return patientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Species:   string(p.Species),
		Breed:     p.Breed,
		Gender:    string(p.Gender),
		BirthDate: p.BirthDate,
		Age:       p.AgeYears(now),
		WeightKg:  p.WeightKg,
		Microchip: p.Microchip,
		OwnerID:   p.OwnerID,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toResponses(items []Patient) []patientResponse {
	now := time.Now()
	out := make([]patientResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toResponse(p, now))
	}
	return out
}

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
