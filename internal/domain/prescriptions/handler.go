package prescriptions

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vetclinic-admin/internal/httpx"
	"vetclinic-admin/internal/platform/export"
	"vetclinic-admin/internal/platform/pdf"
)

const maxBulkSize = 1000

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/prescriptions", func(pr chi.Router) {
		pr.Post("/", createHandler(svc))
		pr.Get("/", listHandler(svc))
		pr.Get("/page", pageHandler(svc))
		pr.Get("/active", activeHandler(svc))
		pr.Get("/export", exportHandler(svc))
		pr.Get("/{prescriptionID}", getHandler(svc))
		pr.Put("/{prescriptionID}", updateHandler(svc))
		pr.Delete("/{prescriptionID}", deleteHandler(svc))
	})

	r.Get("/patients/{patientID}/prescriptions", byPatientHandler(svc))
}

type prescriptionRequest struct {
	MedicalRecordID string `json:"medicalRecordId"`
	PatientID       string `json:"patientId"`
	MedicationID    string `json:"medicationId"`
	Dosage          string `json:"dosage"`
	Frequency       string `json:"frequency"`
	Duration        string `json:"duration"`
	StartDate       string `json:"startDate"` // YYYY-MM-DD
	EndDate         string `json:"endDate"`   // YYYY-MM-DD
	Instructions    string `json:"instructions"`
}

type prescriptionResponse struct {
	ID              string    `json:"id"`
	MedicalRecordID string    `json:"medicalRecordId,omitempty"`
	PatientID       string    `json:"patientId"`
	MedicationID    string    `json:"medicationId"`
	MedicationName  string    `json:"medicationName,omitempty"`
	Dosage          string    `json:"dosage"`
	Frequency       string    `json:"frequency"`
	Duration        string    `json:"duration"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Instructions    string    `json:"instructions,omitempty"`
	Active          bool      `json:"active"`
	Progress        float64   `json:"progress"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req prescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "startDate debe ser YYYY-MM-DD")
			return
		}
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "endDate debe ser YYYY-MM-DD")
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			MedicalRecordID: req.MedicalRecordID,
			PatientID:       req.PatientID,
			MedicationID:    req.MedicationID,
			Dosage:          req.Dosage,
			Frequency:       req.Frequency,
			Duration:        req.Duration,
			StartDate:       start,
			EndDate:         end,
			Instructions:    req.Instructions,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNoStock):
				httpx.Fail(w, http.StatusConflict, "El medicamento no tiene stock disponible")
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "Paciente, medicamento y fechas válidas son obligatorios")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusCreated, "Prescripción creada exitosamente", toResponse(p, svc.now()))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, _, err := svc.List(r.Context(), ListFilter{
			PatientID:       strings.TrimSpace(r.URL.Query().Get("patientId")),
			MedicalRecordID: strings.TrimSpace(r.URL.Query().Get("medicalRecordId")),
			Size:            maxBulkSize,
		})
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items, svc.now()))
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
			PatientID: strings.TrimSpace(r.URL.Query().Get("patientId")),
			Page:      page,
			Size:      size,
		})
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", httpx.NewPage(toResponses(items, svc.now()), total, size, page))
	}
}

func activeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Active(r.Context(), strings.TrimSpace(r.URL.Query().Get("patientId")))
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items, svc.now()))
	}
}

// exportHandler entrega el listado completo como archivo descargable.
// format=EXCEL produce CSV con BOM (Excel lo abre directo); format=PDF
// arma la tabla con platform/pdf. PDF es el formato por defecto.
func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, _, err := svc.List(r.Context(), ListFilter{Size: maxBulkSize})
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		headers := []string{"Paciente", "Medicamento", "Dosis", "Frecuencia", "Duración", "Inicio", "Fin"}
		rows := make([][]string, 0, len(items))
		for _, p := range items {
			rows = append(rows, []string{
				p.PatientID,
				p.MedicationName,
				p.Dosage,
				p.Frequency,
				p.Duration,
				p.StartDate.Format("2006-01-02"),
				p.EndDate.Format("2006-01-02"),
			})
		}

		stamp := svc.now().Format("20060102")
		switch strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("format"))) {
		case "EXCEL", "CSV":
			body, err := export.CSV(headers, rows)
			if err != nil {
				httpx.Fail(w, http.StatusInternalServerError, "Error generando el archivo")
				return
			}
			httpx.Blob(w, "text/csv; charset=utf-8", fmt.Sprintf("prescripciones_%s.csv", stamp), body)
		case "", "PDF":
			body, err := pdf.Render(pdf.Table{
				Title:    "Prescripciones",
				Subtitle: "Generado el " + svc.now().Format("2006-01-02 15:04"),
				Headers:  headers,
				Rows:     rows,
			})
			if err != nil {
				httpx.Fail(w, http.StatusInternalServerError, "Error generando el archivo")
				return
			}
			httpx.Blob(w, "application/pdf", fmt.Sprintf("prescripciones_%s.pdf", stamp), body)
		default:
			httpx.Fail(w, http.StatusBadRequest, "format debe ser PDF o EXCEL")
		}
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "prescriptionID"))
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "Prescripción no encontrada")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponse(p, svc.now()))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Dosage       *string `json:"dosage"`
			Frequency    *string `json:"frequency"`
			Duration     *string `json:"duration"`
			StartDate    *string `json:"startDate"`
			EndDate      *string `json:"endDate"`
			Instructions *string `json:"instructions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		in := UpdateInput{
			Dosage:       req.Dosage,
			Frequency:    req.Frequency,
			Duration:     req.Duration,
			Instructions: req.Instructions,
		}
		if req.StartDate != nil {
			t, err := time.Parse("2006-01-02", *req.StartDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "startDate debe ser YYYY-MM-DD")
				return
			}
			in.StartDate = &t
		}
		if req.EndDate != nil {
			t, err := time.Parse("2006-01-02", *req.EndDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "endDate debe ser YYYY-MM-DD")
				return
			}
			in.EndDate = &t
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "prescriptionID"), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Fail(w, http.StatusBadRequest, "Datos inválidos")
			case errors.Is(err, ErrNotFound):
				httpx.Fail(w, http.StatusNotFound, "Prescripción no encontrada")
			default:
				httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			}
			return
		}

		httpx.OK(w, http.StatusOK, "Prescripción actualizada exitosamente", toResponse(p, svc.now()))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "prescriptionID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Fail(w, http.StatusNotFound, "Prescripción no encontrada")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "Prescripción eliminada exitosamente", nil)
	}
}

func byPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPatient(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toResponses(items, svc.now()))
	}
}

func toResponse(p Prescription, now time.Time) prescriptionResponse {
	return prescriptionResponse{
		ID:              p.ID,
		MedicalRecordID: p.MedicalRecordID,
		PatientID:       p.PatientID,
		MedicationID:    p.MedicationID,
		MedicationName:  p.MedicationName,
		Dosage:          p.Dosage,
		Frequency:       p.Frequency,
		Duration:        p.Duration,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		Instructions:    p.Instructions,
		Active:          p.IsCurrentlyActive(now),
		Progress:        p.Progress(now),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toResponses(items []Prescription, now time.Time) []prescriptionResponse {
	out := make([]prescriptionResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toResponse(p, now))
	}
	return out
}
