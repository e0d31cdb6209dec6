package appointments

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

const maxBulkSize = 500

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createHandler(svc))
		ar.Get("/", listHandler(svc))
		ar.Get("/page", pageHandler(svc))
		ar.Get("/date", byDateHandler(svc))
		ar.Get("/date-range", byRangeHandler(svc))
		ar.Get("/upcoming", upcomingHandler(svc))
		ar.Get("/count", countHandler(svc))
		ar.Get("/{appointmentID}", getHandler(svc))
		ar.Put("/{appointmentID}", updateHandler(svc))
		ar.Patch("/{appointmentID}/status", statusHandler(svc))
		ar.Post("/{appointmentID}/cancel", cancelHandler(svc))
	})
}

type appointmentRequest struct {
	PatientID       string `json:"patientId"`
	VeterinarianID  string `json:"veterinarianId"`
	ScheduledDate   string `json:"scheduledDate"` // RFC3339
	DurationMinutes int    `json:"durationMinutes"`
	Type            string `json:"appointmentType"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

type appointmentResponse struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patientId"`
	VeterinarianID  string    `json:"veterinarianId"`
	ScheduledDate   time.Time `json:"scheduledDate"`
	DurationMinutes int       `json:"durationMinutes"`
	Type            string    `json:"appointmentType"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		scheduled, err := time.Parse(time.RFC3339, req.ScheduledDate)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "scheduledDate debe ser RFC3339")
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			PatientID:       req.PatientID,
			VeterinarianID:  req.VeterinarianID,
			ScheduledDate:   scheduled,
			DurationMinutes: req.DurationMinutes,
			Type:            req.Type,
			Reason:          req.Reason,
			Notes:           req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "Paciente, veterinario y fecha son obligatorios")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		httpx.OK(w, http.StatusCreated, "Cita agendada exitosamente", toResponse(a))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := ListFilter{Size: maxBulkSize}
		if v := strings.TrimSpace(r.URL.Query().Get("patientId")); v != "" {
			f.PatientID = v
		}
		if v := strings.TrimSpace(r.URL.Query().Get("veterinarianId")); v != "" {
			f.VeterinarianID = v
		}
		if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" {
			st, ok := ParseStatus(v)
			if !ok {
				httpx.Fail(w, http.StatusBadRequest, "Estado de cita inválido")
				return
			}
			f.Status = st
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

func byDateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "date debe ser YYYY-MM-DD")
			return
		}
		items, err := svc.ListByDate(r.Context(), day)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func byRangeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err1 := time.Parse("2006-01-02", r.URL.Query().Get("start"))
		to, err2 := time.Parse("2006-01-02", r.URL.Query().Get("end"))
		if err1 != nil || err2 != nil {
			httpx.Fail(w, http.StatusBadRequest, "start y end deben ser YYYY-MM-DD")
			return
		}

		// end es inclusivo en la API: el rango interno es [start, end+1d).
		items, err := svc.ListByRange(r.Context(), from, to.AddDate(0, 0, 1))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "Rango de fechas inválido")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func upcomingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		items, err := svc.Upcoming(r.Context(), limit)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items))
	}
}

func countHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f ListFilter
		if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" {
			st, ok := ParseStatus(v)
			if !ok {
				httpx.Fail(w, http.StatusBadRequest, "Estado de cita inválido")
				return
			}
			f.Status = st
		}
		n, err := svc.Count(r.Context(), f)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", map[string]int64{"count": n})
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "Cita no encontrada")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponse(a))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			VeterinarianID  *string `json:"veterinarianId"`
			ScheduledDate   *string `json:"scheduledDate"`
			DurationMinutes *int    `json:"durationMinutes"`
			Type            *string `json:"appointmentType"`
			Reason          *string `json:"reason"`
			Notes           *string `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		in := UpdateInput{
			VeterinarianID:  req.VeterinarianID,
			DurationMinutes: req.DurationMinutes,
			Type:            req.Type,
			Reason:          req.Reason,
			Notes:           req.Notes,
		}
		if req.ScheduledDate != nil {
			t, err := time.Parse(time.RFC3339, *req.ScheduledDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "scheduledDate debe ser RFC3339")
				return
			}
			in.ScheduledDate = &t
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "appointmentID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.OK(w, http.StatusOK, "Cita actualizada exitosamente", toResponse(a))
	}
}

func statusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		st, ok := ParseStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
		if !ok {
			httpx.Fail(w, http.StatusBadRequest, "Estado de cita inválido")
			return
		}

		a, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "appointmentID"), st)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.OK(w, http.StatusOK, "Estado de la cita actualizado", toResponse(a))
	}
}

func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Cancel(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.OK(w, http.StatusOK, "Cita cancelada exitosamente", toResponse(a))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "Datos inválidos")
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Cita no encontrada")
	case errors.Is(err, ErrIllegalTransition):
		httpx.Fail(w, http.StatusConflict, "La cita no admite esa transición de estado")
	default:
		httpx.Fail(w, http.StatusInternalServerError, "Error interno")
	}
}

func toResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		VeterinarianID:  a.VeterinarianID,
		ScheduledDate:   a.ScheduledDate,
		DurationMinutes: a.DurationMinutes,
		Type:            string(a.Type),
		Status:          string(a.Status),
		Reason:          a.Reason,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toResponses(items []Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toResponse(a))
	}
	return out
}
