package consents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("consent not found")
	ErrAlreadySigned = errors.New("consent already signed")
	ErrNotOwner      = errors.New("consent belongs to another owner")
)

// PatientChecker evita el import directo del paquete patients.
type PatientChecker interface {
	Exists(ctx context.Context, patientID string) bool
}

type Service struct {
	repo     Repository
	patients PatientChecker
	now      func() time.Time
}

func NewService(repo Repository, patients PatientChecker) *Service {
	return &Service{repo: repo, patients: patients, now: time.Now}
}

type CreateInput struct {
	PatientID     string
	OwnerID       string
	ProcedureType string
	Title         string
	Content       string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (InformedConsent, error) {
	in.PatientID = strings.TrimSpace(in.PatientID)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	if in.PatientID == "" || in.OwnerID == "" || strings.TrimSpace(in.Title) == "" {
		return InformedConsent{}, ErrInvalidInput
	}
	if s.patients != nil && !s.patients.Exists(ctx, in.PatientID) {
		return InformedConsent{}, ErrInvalidInput
	}

	now := s.now()
	c := InformedConsent{
		ID:            uuid.NewString(),
		PatientID:     in.PatientID,
		OwnerID:       in.OwnerID,
		ProcedureType: strings.TrimSpace(in.ProcedureType),
		Title:         strings.TrimSpace(in.Title),
		Content:       strings.TrimSpace(in.Content),
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return InformedConsent{}, err
	}
	return c, nil
}

type UpdateInput struct {
	ProcedureType *string
	Title         *string
	Content       *string
}

// Update solo aplica sobre consentimientos pendientes: el contenido de un
// documento firmado es inmutable.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (InformedConsent, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return InformedConsent{}, err
	}
	if c.IsSigned() {
		return InformedConsent{}, ErrAlreadySigned
	}

	if in.ProcedureType != nil {
		c.ProcedureType = strings.TrimSpace(*in.ProcedureType)
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return InformedConsent{}, ErrInvalidInput
		}
		c.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		c.Content = strings.TrimSpace(*in.Content)
	}
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return InformedConsent{}, err
	}
	return c, nil
}

// Sign marca el consentimiento como firmado. La transición es de una sola
// vía: firmar dos veces devuelve ErrAlreadySigned.
func (s *Service) Sign(ctx context.Context, id, signedBy string) (InformedConsent, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return InformedConsent{}, err
	}
	if c.IsSigned() {
		return InformedConsent{}, ErrAlreadySigned
	}

	now := s.now()
	c.Status = StatusSigned
	c.SignedAt = &now
	c.SignedBy = strings.TrimSpace(signedBy)
	c.UpdatedAt = now

	if err := s.repo.Update(ctx, c); err != nil {
		return InformedConsent{}, err
	}
	return c, nil
}

// SignAsOwner firma verificando que el consentimiento pertenezca al
// propietario autenticado (portal de propietarios).
func (s *Service) SignAsOwner(ctx context.Context, id, ownerID, signedBy string) (InformedConsent, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return InformedConsent{}, err
	}
	if c.OwnerID != strings.TrimSpace(ownerID) {
		return InformedConsent{}, ErrNotOwner
	}
	return s.Sign(ctx, id, signedBy)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.IsSigned() {
		return ErrAlreadySigned
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (InformedConsent, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]InformedConsent, int64, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Pending(ctx context.Context) ([]InformedConsent, error) {
	items, _, err := s.repo.List(ctx, ListFilter{Status: StatusPending})
	return items, err
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]InformedConsent, error) {
	items, _, err := s.repo.List(ctx, ListFilter{PatientID: strings.TrimSpace(patientID)})
	return items, err
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]InformedConsent, error) {
	items, _, err := s.repo.List(ctx, ListFilter{OwnerID: strings.TrimSpace(ownerID)})
	return items, err
}
