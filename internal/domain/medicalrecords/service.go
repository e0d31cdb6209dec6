package medicalrecords

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medical record not found")
)

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
	PatientID        string
	VeterinarianID   string
	RecordDate       time.Time
	Symptoms         string
	Diagnosis        string
	Treatment        string
	Vitals           Vitals
	FollowUpRequired bool
	FollowUpDate     *time.Time
	Notes            string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (MedicalRecord, error) {
	if strings.TrimSpace(in.PatientID) == "" {
		return MedicalRecord{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.VeterinarianID) == "" {
		return MedicalRecord{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Diagnosis) == "" {
		return MedicalRecord{}, ErrInvalidInput
	}
	if in.FollowUpRequired && in.FollowUpDate == nil {
		return MedicalRecord{}, ErrInvalidInput
	}
	if s.patients != nil && !s.patients.Exists(ctx, strings.TrimSpace(in.PatientID)) {
		return MedicalRecord{}, ErrInvalidInput
	}

	now := s.now()
	recordDate := in.RecordDate
	if recordDate.IsZero() {
		recordDate = now
	}

	rec := MedicalRecord{
		ID:               uuid.NewString(),
		PatientID:        strings.TrimSpace(in.PatientID),
		VeterinarianID:   strings.TrimSpace(in.VeterinarianID),
		RecordDate:       recordDate,
		Symptoms:         strings.TrimSpace(in.Symptoms),
		Diagnosis:        strings.TrimSpace(in.Diagnosis),
		Treatment:        strings.TrimSpace(in.Treatment),
		Vitals:           in.Vitals,
		FollowUpRequired: in.FollowUpRequired,
		FollowUpDate:     in.FollowUpDate,
		Notes:            strings.TrimSpace(in.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return MedicalRecord{}, err
	}
	return rec, nil
}

type UpdateInput struct {
	Symptoms         *string
	Diagnosis        *string
	Treatment        *string
	Vitals           *Vitals
	FollowUpRequired *bool
	FollowUpDate     *time.Time
	Notes            *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (MedicalRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return MedicalRecord{}, err
	}

	if in.Symptoms != nil {
		rec.Symptoms = strings.TrimSpace(*in.Symptoms)
	}
	if in.Diagnosis != nil {
		if strings.TrimSpace(*in.Diagnosis) == "" {
			return MedicalRecord{}, ErrInvalidInput
		}
		rec.Diagnosis = strings.TrimSpace(*in.Diagnosis)
	}
	if in.Treatment != nil {
		rec.Treatment = strings.TrimSpace(*in.Treatment)
	}
	if in.Vitals != nil {
		rec.Vitals = *in.Vitals
	}
	if in.FollowUpRequired != nil {
		rec.FollowUpRequired = *in.FollowUpRequired
	}
	if in.FollowUpDate != nil {
		rec.FollowUpDate = in.FollowUpDate
	}
	if in.Notes != nil {
		rec.Notes = strings.TrimSpace(*in.Notes)
	}

	rec.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, rec); err != nil {
		return MedicalRecord{}, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (MedicalRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]MedicalRecord, int64, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]MedicalRecord, error) {
	items, _, err := s.repo.List(ctx, ListFilter{PatientID: strings.TrimSpace(patientID)})
	return items, err
}
