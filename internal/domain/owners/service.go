package owners

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("owner not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	DocumentType   string
	DocumentNumber string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Address        string
	City           string
	Notes          string
	UserID         string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Owner, error) {
	if strings.TrimSpace(in.DocumentNumber) == "" {
		return Owner{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return Owner{}, ErrInvalidInput
	}

	docType := DocumentType(strings.ToUpper(strings.TrimSpace(in.DocumentType)))
	if docType == "" {
		docType = DocumentCC
	}

	now := s.now()
	o := Owner{
		ID:             uuid.NewString(),
		DocumentType:   docType,
		DocumentNumber: strings.TrimSpace(in.DocumentNumber),
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Address:        strings.TrimSpace(in.Address),
		City:           strings.TrimSpace(in.City),
		Notes:          strings.TrimSpace(in.Notes),
		UserID:         strings.TrimSpace(in.UserID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Owner{}, err
	}
	return o, nil
}

type UpdateInput struct {
	// Punteros para update parcial: nil = no tocar.
	DocumentType   *string
	DocumentNumber *string
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Address        *string
	City           *string
	Notes          *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Owner, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}

	if in.DocumentType != nil {
		o.DocumentType = DocumentType(strings.ToUpper(strings.TrimSpace(*in.DocumentType)))
	}
	if in.DocumentNumber != nil {
		if strings.TrimSpace(*in.DocumentNumber) == "" {
			return Owner{}, ErrInvalidInput
		}
		o.DocumentNumber = strings.TrimSpace(*in.DocumentNumber)
	}
	if in.FirstName != nil {
		if strings.TrimSpace(*in.FirstName) == "" {
			return Owner{}, ErrInvalidInput
		}
		o.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		o.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		o.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		o.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		o.Address = strings.TrimSpace(*in.Address)
	}
	if in.City != nil {
		o.City = strings.TrimSpace(*in.City)
	}
	if in.Notes != nil {
		o.Notes = strings.TrimSpace(*in.Notes)
	}

	o.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, o); err != nil {
		return Owner{}, err
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Owner, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUserID resuelve el propietario asociado a una cuenta del portal.
func (s *Service) GetByUserID(ctx context.Context, userID string) (Owner, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Owner, int64, error) {
	return s.repo.List(ctx, f)
}
