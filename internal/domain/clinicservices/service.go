package clinicservices

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("clinic service not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Name            string
	Description     string
	Category        string
	Price           float64
	DurationMinutes int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (ClinicService, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price < 0 {
		return ClinicService{}, ErrInvalidInput
	}
	if in.DurationMinutes <= 0 {
		in.DurationMinutes = 30
	}

	now := s.now()
	cs := ClinicService{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(in.Name),
		Description:     strings.TrimSpace(in.Description),
		Category:        NormalizeCategory(in.Category),
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, cs); err != nil {
		return ClinicService{}, err
	}
	return cs, nil
}

type UpdateInput struct {
	Name            *string
	Description     *string
	Category        *string
	Price           *float64
	DurationMinutes *int
	Active          *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (ClinicService, error) {
	cs, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ClinicService{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return ClinicService{}, ErrInvalidInput
		}
		cs.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		cs.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		cs.Category = NormalizeCategory(*in.Category)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return ClinicService{}, ErrInvalidInput
		}
		cs.Price = *in.Price
	}
	if in.DurationMinutes != nil && *in.DurationMinutes > 0 {
		cs.DurationMinutes = *in.DurationMinutes
	}
	if in.Active != nil {
		cs.Active = *in.Active
	}
	cs.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, cs); err != nil {
		return ClinicService{}, err
	}
	return cs, nil
}

// ToggleActive invierte la disponibilidad del servicio en el catálogo.
func (s *Service) ToggleActive(ctx context.Context, id string) (ClinicService, error) {
	cs, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ClinicService{}, err
	}
	cs.Active = !cs.Active
	cs.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, cs); err != nil {
		return ClinicService{}, err
	}
	return cs, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (ClinicService, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]ClinicService, int64, error) {
	return s.repo.List(ctx, f)
}

// Active devuelve solo los servicios ofertables, para el agendamiento.
func (s *Service) Active(ctx context.Context) ([]ClinicService, error) {
	items, _, err := s.repo.List(ctx, ListFilter{OnlyActive: true})
	return items, err
}
