package agenda

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vetclinic-admin/internal/domain/appointments"
	"vetclinic-admin/internal/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/agenda", func(ar chi.Router) {
		ar.Get("/daily", dailyHandler(svc))
		ar.Get("/weekly", weeklyHandler(svc))
		ar.Get("/monthly", monthlyHandler(svc))
	})
}

type entryResponse struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patientId"`
	VeterinarianID  string    `json:"veterinarianId,omitempty"`
	ScheduledDate   time.Time `json:"scheduledDate"`
	DurationMinutes int       `json:"durationMinutes"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
}

type dayResponse struct {
	Date         string          `json:"date"`
	Appointments []entryResponse `json:"appointments"`
}

type weekResponse struct {
	WeekStart string        `json:"weekStart"`
	Days      []dayResponse `json:"days"`
}

type monthCell struct {
	Day   int `json:"day"`
	Count int `json:"count"`
}

type monthResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Weeks [][]monthCell `json:"weeks"`
	Total int           `json:"total"`
}

// dateParam lee ?date=YYYY-MM-DD; sin parámetro usa el día actual.
func dateParam(r *http.Request, now func() time.Time) (time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return now(), true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func dailyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := dateParam(r, svc.now)
		if !ok {
			httpx.Fail(w, http.StatusBadRequest, "date debe ser YYYY-MM-DD")
			return
		}

		view, err := svc.Daily(r.Context(), day)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}
		httpx.OK(w, http.StatusOK, "", toDayResponse(view))
	}
}

func weeklyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := dateParam(r, svc.now)
		if !ok {
			httpx.Fail(w, http.StatusBadRequest, "date debe ser YYYY-MM-DD")
			return
		}

		view, err := svc.Weekly(r.Context(), day)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		out := weekResponse{WeekStart: view.WeekStart.Format("2006-01-02")}
		for _, d := range view.Days {
			out.Days = append(out.Days, toDayResponse(d))
		}
		httpx.OK(w, http.StatusOK, "", out)
	}
}

func monthlyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := svc.now()
		year, month := now.Year(), int(now.Month())
		if v := r.URL.Query().Get("year"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 2000 || n > 2100 {
				httpx.Fail(w, http.StatusBadRequest, "year inválido")
				return
			}
			year = n
		}
		if v := r.URL.Query().Get("month"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 12 {
				httpx.Fail(w, http.StatusBadRequest, "month debe estar entre 1 y 12")
				return
			}
			month = n
		}

		view, err := svc.Monthly(r.Context(), year, time.Month(month))
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error interno")
			return
		}

		out := monthResponse{Year: view.Year, Month: int(view.Month), Total: view.Total}
		for _, week := range view.Weeks {
			row := make([]monthCell, 0, 7)
			for _, c := range week {
				row = append(row, monthCell{Day: c.Day, Count: c.Count})
			}
			out.Weeks = append(out.Weeks, row)
		}
		httpx.OK(w, http.StatusOK, "", out)
	}
}

func toDayResponse(d DayView) dayResponse {
	out := dayResponse{
		Date:         d.Date.Format("2006-01-02"),
		Appointments: make([]entryResponse, 0, len(d.Appointments)),
	}
	for _, a := range d.Appointments {
		out.Appointments = append(out.Appointments, toEntry(a))
	}
	return out
}

func toEntry(a appointments.Appointment) entryResponse {
	return entryResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		VeterinarianID:  a.VeterinarianID,
		ScheduledDate:   a.ScheduledDate,
		DurationMinutes: a.DurationMinutes,
		Type:            string(a.Type),
		Status:          string(a.Status),
		Reason:          a.Reason,
	}
}
