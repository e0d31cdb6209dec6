package consents

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
	r.Route("/informed-consents", func(cr chi.Router) {
		cr.Post("/", createHandler(svc))
		cr.Get("/", listHandler(svc))
		cr.Get("/page", pageHandler(svc))
		cr.Get("/pending", pendingHandler(svc))
		cr.Get("/{consentID}", getHandler(svc))
		cr.Put("/{consentID}", updateHandler(svc))
		cr.Post("/{consentID}/sign", signHandler(svc))
		cr.Delete("/{consentID}", deleteHandler(svc))
	})

	r.Get("/patients/{patientID}/informed-consents", byPatientHandler(svc))
}

type consentRequest struct {
	PatientID     string `json:"patientId"`
	OwnerID       string `json:"ownerId"`
	ProcedureType string `json:"procedureType"`
	Title         string `json:"title"`
	Content       string `json:"content"`
}

type consentResponse struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patientId"`
	OwnerID       string     `json:"ownerId"`
	ProcedureType string     `json:"procedureType,omitempty"`
	Title         string     `json:"title"`
	Content       string     `json:"content,omitempty"`
	Status        string     `json:"status"`
	SignedAt      *time.Time `json:"signedAt,omitempty"`
	SignedBy      string     `json:"signedBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req consentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			PatientID:     req.PatientID,
			OwnerID:       req.OwnerID,
			ProcedureType: req.ProcedureType,
			Title:         req.Title,
			Content:       req.Content,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "Paciente, propietario y título son obligatorios")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		httpx.OK(w, http.StatusCreated, "Consentimiento creado exitosamente", toResponse(c))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := ListFilter{
			PatientID: strings.TrimSpace(r.URL.Query().Get("patientId")),
			OwnerID:   strings.TrimSpace(r.URL.Query().Get("ownerId")),
			Size:      maxBulkSize,
		}
		if v := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))); v != "" {
			f.Status = ConsentStatus(v)
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

		items, total, err := svc.List(r.Context(), ListFilter{Page: page, Size: size})
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", httpx.NewPage(toResponses(items), total, size, page))
	}
}

func pendingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Pending(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "consentID"))
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "Consentimiento no encontrado")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponse(c))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProcedureType *string `json:"procedureType"`
			Title         *string `json:"title"`
			Content       *string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "consentID"), UpdateInput{
			ProcedureType: req.ProcedureType,
			Title:         req.Title,
			Content:       req.Content,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.OK(w, http.StatusOK, "Consentimiento actualizado exitosamente", toResponse(c))
	}
}

func signHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SignedBy string `json:"signedBy"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		if strings.TrimSpace(req.SignedBy) == "" {
			httpx.Fail(w, http.StatusBadRequest, "signedBy es obligatorio")
			return
		}

		c, err := svc.Sign(r.Context(), chi.URLParam(r, "consentID"), req.SignedBy)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.OK(w, http.StatusOK, "Consentimiento firmado exitosamente", toResponse(c))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "consentID")); err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.OK(w, http.StatusOK, "Consentimiento eliminado exitosamente", nil)
	}
}

func byPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPatient(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAlreadySigned):
		httpx.Fail(w, http.StatusConflict, "El consentimiento ya fue firmado")
	case errors.Is(err, ErrNotOwner):
		httpx.Fail(w, http.StatusForbidden, "El consentimiento pertenece a otro propietario")
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "Datos inválidos")
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Consentimiento no encontrado")
	default:
		httpx.Fail(w, http.StatusInternalServerError, "Error interno")
	}
}

func toResponse(c InformedConsent) consentResponse {
	return consentResponse{
		ID:            c.ID,
		PatientID:     c.PatientID,
		OwnerID:       c.OwnerID,
		ProcedureType: c.ProcedureType,
		Title:         c.Title,
		Content:       c.Content,
		Status:        string(c.Status),
		SignedAt:      c.SignedAt,
		SignedBy:      c.SignedBy,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toResponses(items []InformedConsent) []consentResponse {
	out := make([]consentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toResponse(c))
	}
	return out
}
