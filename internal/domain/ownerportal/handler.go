package ownerportal

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vetclinic-admin/internal/domain/appointments"
	"vetclinic-admin/internal/domain/consents"
	"vetclinic-admin/internal/domain/patients"
	"vetclinic-admin/internal/httpx"
	"vetclinic-admin/internal/middleware"
)

// RegisterRoutes monta el portal; el router exige el rol OWNER antes
// de llegar aquí.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/owner-portal", func(pr chi.Router) {
		pr.Get("/profile", profileHandler(svc))
		pr.Get("/my-pets", myPetsHandler(svc))
		pr.Get("/my-appointments", myAppointmentsHandler(svc))
		pr.Get("/my-appointments/upcoming", upcomingHandler(svc))
		pr.Post("/appointments", requestHandler(svc))
		pr.Get("/my-consents", myConsentsHandler(svc))
		pr.Post("/consents/{consentID}/sign", signHandler(svc))
	})
}

func userID(r *http.Request, w http.ResponseWriter) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || claims.UserID == "" {
		httpx.Fail(w, http.StatusUnauthorized, "No autorizado")
		return "", false
	}
	return claims.UserID, true
}

func writePortalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoProfile):
		httpx.Fail(w, http.StatusNotFound, "La cuenta no tiene un perfil de propietario vinculado")
	case errors.Is(err, consents.ErrNotOwner):
		httpx.Fail(w, http.StatusForbidden, "El consentimiento pertenece a otro propietario")
	case errors.Is(err, consents.ErrAlreadySigned):
		httpx.Fail(w, http.StatusConflict, "El consentimiento ya fue firmado")
	case errors.Is(err, consents.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Consentimiento no encontrado")
	default:
		httpx.Fail(w, http.StatusInternalServerError, "Error interno")
	}
}

func profileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(r, w)
		if !ok {
			return
		}

		o, err := svc.Profile(r.Context(), uid)
		if err != nil {
			writePortalError(w, err)
			return
		}
		httpx.OK(w, http.StatusOK, "", map[string]any{
			"id":       o.ID,
			"fullName": o.FullName(),
			"email":    o.Email,
			"phone":    o.Phone,
			"address":  o.Address,
		})
	}
}

func myPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(r, w)
		if !ok {
			return
		}

		pets, err := svc.MyPets(r.Context(), uid)
		if err != nil {
			writePortalError(w, err)
			return
		}
		httpx.OK(w, http.StatusOK, "", toPetResponses(pets))
	}
}

func myAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(r, w)
		if !ok {
			return
		}

		items, err := svc.MyAppointments(r.Context(), uid)
		if err != nil {
			writePortalError(w, err)
			return
		}
		httpx.OK(w, http.StatusOK, "", toAppointmentResponses(items))
	}
}

func upcomingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(r, w)
		if !ok {
			return
		}

		items, err := svc.UpcomingAppointments(r.Context(), uid, time.Now())
		if err != nil {
			writePortalError(w, err)
			return
		}
		httpx.OK(w, http.StatusOK, "", toAppointmentResponses(items))
	}
}

func requestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(r, w)
		if !ok {
			return
		}

		var req struct {
			PatientID     string `json:"patientId"`
			ScheduledDate string `json:"scheduledDate"` // RFC3339
			Type          string `json:"type"`
			Reason        string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		when, err := time.Parse(time.RFC3339, req.ScheduledDate)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "scheduledDate debe ser RFC3339")
			return
		}

		a, err := svc.RequestAppointment(r.Context(), uid, RequestInput{
			PatientID:     req.PatientID,
			ScheduledDate: when,
			Type:          req.Type,
			Reason:        req.Reason,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotMyPet):
				httpx.Fail(w, http.StatusForbidden, "La mascota pertenece a otro propietario")
			case errors.Is(err, appointments.ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "Datos de la cita inválidos")
			default:
				writePortalError(w, err)
			}
			return
		}

		httpx.OK(w, http.StatusCreated, "Cita solicitada exitosamente", toAppointmentResponses([]appointments.Appointment{a})[0])
	}
}

func myConsentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(r, w)
		if !ok {
			return
		}

		items, err := svc.MyConsents(r.Context(), uid)
		if err != nil {
			writePortalError(w, err)
			return
		}
		httpx.OK(w, http.StatusOK, "", toConsentResponses(items))
	}
}

func signHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userID(r, w)
		if !ok {
			return
		}

		c, err := svc.SignConsent(r.Context(), uid, chi.URLParam(r, "consentID"))
		if err != nil {
			writePortalError(w, err)
			return
		}
		httpx.OK(w, http.StatusOK, "Consentimiento firmado exitosamente", toConsentResponse(c))
	}
}

type petResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed,omitempty"`
	Gender  string `json:"gender"`
}

type appointmentResponse struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patientId"`
	ScheduledDate   time.Time `json:"scheduledDate"`
	DurationMinutes int       `json:"durationMinutes"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
}

type consentResponse struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patientId"`
	ProcedureType string     `json:"procedureType,omitempty"`
	Title         string     `json:"title"`
	Content       string     `json:"content,omitempty"`
	Status        string     `json:"status"`
	SignedAt      *time.Time `json:"signedAt,omitempty"`
}

func toPetResponses(items []patients.Patient) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, petResponse{
			ID:      p.ID,
			Name:    p.Name,
			Species: string(p.Species),
			Breed:   p.Breed,
			Gender:  string(p.Gender),
		})
	}
	return out
}

func toAppointmentResponses(items []appointments.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, appointmentResponse{
			ID:              a.ID,
			PatientID:       a.PatientID,
			ScheduledDate:   a.ScheduledDate,
			DurationMinutes: a.DurationMinutes,
			Type:            string(a.Type),
			Status:          string(a.Status),
			Reason:          a.Reason,
		})
	}
	return out
}

func toConsentResponse(c consents.InformedConsent) consentResponse {
	return consentResponse{
		ID:            c.ID,
		PatientID:     c.PatientID,
		ProcedureType: c.ProcedureType,
		Title:         c.Title,
		Content:       c.Content,
		Status:        string(c.Status),
		SignedAt:      c.SignedAt,
	}
}

func toConsentResponses(items []consents.InformedConsent) []consentResponse {
	out := make([]consentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toConsentResponse(c))
	}
	return out
}
