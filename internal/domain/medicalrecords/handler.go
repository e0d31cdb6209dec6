package medicalrecords

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vetclinic-admin/internal/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medical-records", func(mr chi.Router) {
		mr.Post("/", createHandler(svc))
		mr.Get("/{recordID}", getHandler(svc))
		mr.Put("/{recordID}", updateHandler(svc))
		mr.Delete("/{recordID}", deleteHandler(svc))
	})

	// Historia clínica completa de un paciente.
	r.Get("/patients/{patientID}/medical-records", listByPatientHandler(svc))
}

type vitalsPayload struct {
	WeightKg     float64 `json:"weight"`
	TemperatureC float64 `json:"temperature"`
	HeartRate    int     `json:"heartRate"`
}

type recordRequest struct {
	PatientID        string        `json:"patientId"`
	VeterinarianID   string        `json:"veterinarianId"`
	RecordDate       string        `json:"recordDate"` // RFC3339 opcional
	Symptoms         string        `json:"symptoms"`
	Diagnosis        string        `json:"diagnosis"`
	Treatment        string        `json:"treatment"`
	Vitals           vitalsPayload `json:"vitals"`
	FollowUpRequired bool          `json:"followUpRequired"`
	FollowUpDate     string        `json:"followUpDate"` // YYYY-MM-DD opcional
	Notes            string        `json:"notes"`
}

type recordResponse struct {
	ID               string        `json:"id"`
	PatientID        string        `json:"patientId"`
	VeterinarianID   string        `json:"veterinarianId"`
	RecordDate       time.Time     `json:"recordDate"`
	Symptoms         string        `json:"symptoms"`
	Diagnosis        string        `json:"diagnosis"`
	Treatment        string        `json:"treatment"`
	Vitals           vitalsPayload `json:"vitals"`
	FollowUpRequired bool          `json:"followUpRequired"`
	FollowUpDate     *time.Time    `json:"followUpDate,omitempty"`
	Notes            string        `json:"notes"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		in := CreateInput{
			PatientID:      req.PatientID,
			VeterinarianID: req.VeterinarianID,
			Symptoms:       req.Symptoms,
			Diagnosis:      req.Diagnosis,
			Treatment:      req.Treatment,
			Vitals: Vitals{
				WeightKg:     req.Vitals.WeightKg,
				TemperatureC: req.Vitals.TemperatureC,
				HeartRate:    req.Vitals.HeartRate,
			},
			FollowUpRequired: req.FollowUpRequired,
			Notes:            req.Notes,
		}

		if req.RecordDate != "" {
			t, err := time.Parse(time.RFC3339, req.RecordDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "recordDate debe ser RFC3339")
				return
			}
			in.RecordDate = t
		}
		if req.FollowUpDate != "" {
			t, err := time.Parse("2006-01-02", req.FollowUpDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "followUpDate debe ser YYYY-MM-DD")
				return
			}
			in.FollowUpDate = &t
		}

		rec, err := svc.Create(r.Context(), in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "Paciente, veterinario y diagnóstico son obligatorios")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		httpx.OK(w, http.StatusCreated, "Registro médico creado exitosamente", toResponse(rec))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "Registro médico no encontrado")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponse(rec))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Symptoms         *string        `json:"symptoms"`
			Diagnosis        *string        `json:"diagnosis"`
			Treatment        *string        `json:"treatment"`
			Vitals           *vitalsPayload `json:"vitals"`
			FollowUpRequired *bool          `json:"followUpRequired"`
			FollowUpDate     *string        `json:"followUpDate"`
			Notes            *string        `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		in := UpdateInput{
			Symptoms:         req.Symptoms,
			Diagnosis:        req.Diagnosis,
			Treatment:        req.Treatment,
			FollowUpRequired: req.FollowUpRequired,
			Notes:            req.Notes,
		}
		if req.Vitals != nil {
			in.Vitals = &Vitals{
				WeightKg:     req.Vitals.WeightKg,
				TemperatureC: req.Vitals.TemperatureC,
				HeartRate:    req.Vitals.HeartRate,
			}
		}
		if req.FollowUpDate != nil {
			t, err := time.Parse("2006-01-02", *req.FollowUpDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "followUpDate debe ser YYYY-MM-DD")
				return
			}
			in.FollowUpDate = &t
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "recordID"), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "Datos inválidos")
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Registro médico no encontrado")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusOK, "Registro médico actualizado exitosamente", toResponse(rec))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "recordID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Fail(w, http.StatusNotFound, "Registro médico no encontrado")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "Registro médico eliminado exitosamente", nil)
	}
}

func listByPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPatient(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toResponse(rec))
		}
		httpx.OK(w, http.StatusOK, "", out)
	}
}

func toResponse(rec MedicalRecord) recordResponse {
	return recordResponse{
		ID:             rec.ID,
		PatientID:      rec.PatientID,
		VeterinarianID: rec.VeterinarianID,
		RecordDate:     rec.RecordDate,
		Symptoms:       rec.Symptoms,
		Diagnosis:      rec.Diagnosis,
		Treatment:      rec.Treatment,
		Vitals: vitalsPayload{
			WeightKg:     rec.Vitals.WeightKg,
			TemperatureC: rec.Vitals.TemperatureC,
			HeartRate:    rec.Vitals.HeartRate,
		},
		FollowUpRequired: rec.FollowUpRequired,
		FollowUpDate:     rec.FollowUpDate,
		Notes:            rec.Notes,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}
