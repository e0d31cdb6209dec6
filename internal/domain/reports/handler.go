package reports

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vetclinic-admin/internal/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/appointments", appointmentsHandler(svc))
		rr.Get("/patients", patientsHandler(svc))
		rr.Get("/services", servicesHandler(svc))
	})
}

func appointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "format debe ser PDF o EXCEL")
			return
		}

		// Sin rango se reporta el mes en curso.
		now := svc.now()
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, -1)
		if v := strings.TrimSpace(r.URL.Query().Get("start")); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "start debe ser YYYY-MM-DD")
				return
			}
			from = t
		}
		if v := strings.TrimSpace(r.URL.Query().Get("end")); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "end debe ser YYYY-MM-DD")
				return
			}
			to = t
		}
		if to.Before(from) {
			httpx.Fail(w, http.StatusBadRequest, "end no puede ser anterior a start")
			return
		}

		file, err := svc.Appointments(r.Context(), from, to, format)
		if err != nil {
			writeRenderError(w, err)
			return
		}
		httpx.Blob(w, file.ContentType, file.Name, file.Body)
	}
}

func patientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "format debe ser PDF o EXCEL")
			return
		}

		file, err := svc.Patients(r.Context(), format)
		if err != nil {
			writeRenderError(w, err)
			return
		}
		httpx.Blob(w, file.ContentType, file.Name, file.Body)
	}
}

func servicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "format debe ser PDF o EXCEL")
			return
		}

		file, err := svc.ClinicServices(r.Context(), format)
		if err != nil {
			writeRenderError(w, err)
			return
		}
		httpx.Blob(w, file.ContentType, file.Name, file.Body)
	}
}

func writeRenderError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrBadFormat) {
		httpx.Fail(w, http.StatusBadRequest, "format debe ser PDF o EXCEL")
		return
	}
	httpx.Fail(w, http.StatusInternalServerError, "Error generando el reporte")
}
