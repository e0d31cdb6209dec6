package prescriptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("prescription not found")
	ErrNoStock      = errors.New("medication out of stock")
)

// MedicationChecker consulta el inventario sin importar el paquete inventory.
type MedicationChecker interface {
	// MedicationInfo devuelve (nombre, cantidad disponible, ok).
	MedicationInfo(ctx context.Context, medicationID string) (string, int, bool)
}

type Service struct {
	repo        Repository
	medications MedicationChecker
	now         func() time.Time
}

func NewService(repo Repository, medications MedicationChecker) *Service {
	return &Service{
		repo:        repo,
		medications: medications,
		now:         time.Now,
	}
}

type CreateInput struct {
	MedicalRecordID string
	PatientID       string
	MedicationID    string
	Dosage          string
	Frequency       string
	Duration        string
	StartDate       time.Time
	EndDate         time.Time
	Instructions    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Prescription, error) {
	if strings.TrimSpace(in.PatientID) == "" {
		return Prescription{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.MedicationID) == "" {
		return Prescription{}, ErrInvalidInput
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return Prescription{}, ErrInvalidInput
	}
	if in.EndDate.Before(in.StartDate) {
		return Prescription{}, ErrInvalidInput
	}

	// Validación de stock contra inventario antes de prescribir.
	var medName string
	if s.medications != nil {
		name, qty, ok := s.medications.MedicationInfo(ctx, strings.TrimSpace(in.MedicationID))
		if !ok {
			return Prescription{}, ErrInvalidInput
		}
		if qty <= 0 {
			return Prescription{}, ErrNoStock
		}
		medName = name
	}

	now := s.now()
	p := Prescription{
		ID:              uuid.NewString(),
		MedicalRecordID: strings.TrimSpace(in.MedicalRecordID),
		PatientID:       strings.TrimSpace(in.PatientID),
		MedicationID:    strings.TrimSpace(in.MedicationID),
		MedicationName:  medName,
		Dosage:          strings.TrimSpace(in.Dosage),
		Frequency:       strings.TrimSpace(in.Frequency),
		Duration:        strings.TrimSpace(in.Duration),
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Instructions:    strings.TrimSpace(in.Instructions),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Prescription{}, err
	}
	return p, nil
}

type UpdateInput struct {
	Dosage       *string
	Frequency    *string
	Duration     *string
	StartDate    *time.Time
	EndDate      *time.Time
	Instructions *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Prescription, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Prescription{}, err
	}

	if in.Dosage != nil {
		p.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Frequency != nil {
		p.Frequency = strings.TrimSpace(*in.Frequency)
	}
	if in.Duration != nil {
		p.Duration = strings.TrimSpace(*in.Duration)
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = *in.EndDate
	}
	if p.EndDate.Before(p.StartDate) {
		return Prescription{}, ErrInvalidInput
	}
	if in.Instructions != nil {
		p.Instructions = strings.TrimSpace(*in.Instructions)
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Prescription{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Prescription, int64, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]Prescription, error) {
	items, _, err := s.repo.List(ctx, ListFilter{PatientID: strings.TrimSpace(patientID)})
	return items, err
}

// Active devuelve las prescripciones vigentes hoy.
func (s *Service) Active(ctx context.Context, patientID string) ([]Prescription, error) {
	items, _, err := s.repo.List(ctx, ListFilter{PatientID: patientID})
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]Prescription, 0)
	for _, p := range items {
		if p.IsCurrentlyActive(now) {
			out = append(out, p)
		}
	}
	return out, nil
}
