package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("appointment not found")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// PatientChecker valida que el paciente exista sin importar el paquete patients.
type PatientChecker interface {
	Exists(ctx context.Context, patientID string) bool
}

type Service struct {
	repo     Repository
	patients PatientChecker
	now      func() time.Time
}

func NewService(repo Repository, patients PatientChecker) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		now:      time.Now,
	}
}

type CreateInput struct {
	PatientID       string
	VeterinarianID  string
	ScheduledDate   time.Time
	DurationMinutes int
	Type            string
	Reason          string
	Notes           string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	if strings.TrimSpace(in.PatientID) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.VeterinarianID) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if in.ScheduledDate.IsZero() {
		return Appointment{}, ErrInvalidInput
	}
	if s.patients != nil && !s.patients.Exists(ctx, strings.TrimSpace(in.PatientID)) {
		return Appointment{}, ErrInvalidInput
	}

	dur := in.DurationMinutes
	if dur <= 0 {
		dur = 30
	}

	apptType := AppointmentType(strings.ToUpper(strings.TrimSpace(in.Type)))
	if apptType == "" {
		apptType = TypeConsultation
	}

	now := s.now()
	a := Appointment{
		ID:              uuid.NewString(),
		PatientID:       strings.TrimSpace(in.PatientID),
		VeterinarianID:  strings.TrimSpace(in.VeterinarianID),
		ScheduledDate:   in.ScheduledDate,
		DurationMinutes: dur,
		Type:            apptType,
		Status:          StatusScheduled,
		Reason:          strings.TrimSpace(in.Reason),
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

type UpdateInput struct {
	VeterinarianID  *string
	ScheduledDate   *time.Time
	DurationMinutes *int
	Type            *string
	Reason          *string
	Notes           *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if IsTerminal(a.Status) {
		return Appointment{}, ErrIllegalTransition
	}

	if in.VeterinarianID != nil {
		if strings.TrimSpace(*in.VeterinarianID) == "" {
			return Appointment{}, ErrInvalidInput
		}
		a.VeterinarianID = strings.TrimSpace(*in.VeterinarianID)
	}
	if in.ScheduledDate != nil {
		if in.ScheduledDate.IsZero() {
			return Appointment{}, ErrInvalidInput
		}
		a.ScheduledDate = *in.ScheduledDate
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return Appointment{}, ErrInvalidInput
		}
		a.DurationMinutes = *in.DurationMinutes
	}
	if in.Type != nil {
		a.Type = AppointmentType(strings.ToUpper(strings.TrimSpace(*in.Type)))
	}
	if in.Reason != nil {
		a.Reason = strings.TrimSpace(*in.Reason)
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}

	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// UpdateStatus aplica una transición validando la monotonía del ciclo.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if !CanTransition(a.Status, to) {
		return Appointment{}, ErrIllegalTransition
	}

	a.Status = to
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// Cancel es un atajo de UpdateStatus hacia CANCELLED.
func (s *Service) Cancel(ctx context.Context, id string) (Appointment, error) {
	return s.UpdateStatus(ctx, id, StatusCancelled)
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Appointment, int64, error) {
	return s.repo.List(ctx, f)
}

// ListByDate devuelve las citas del día [00:00, 24:00) local.
func (s *Service) ListByDate(ctx context.Context, day time.Time) ([]Appointment, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	items, _, err := s.repo.List(ctx, ListFilter{From: from, To: from.AddDate(0, 0, 1)})
	return items, err
}

// ListByRange devuelve las citas en [from, to).
func (s *Service) ListByRange(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	if to.Before(from) {
		return nil, ErrInvalidInput
	}
	items, _, err := s.repo.List(ctx, ListFilter{From: from, To: to})
	return items, err
}

// Upcoming devuelve las próximas citas no resueltas a partir de ahora.
func (s *Service) Upcoming(ctx context.Context, limit int) ([]Appointment, error) {
	if limit <= 0 {
		limit = 10
	}
	items, _, err := s.repo.List(ctx, ListFilter{From: s.now(), Size: limit})
	if err != nil {
		return nil, err
	}
	out := make([]Appointment, 0, len(items))
	for _, a := range items {
		if !IsTerminal(a.Status) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Service) Count(ctx context.Context, f ListFilter) (int64, error) {
	return s.repo.Count(ctx, f)
}
