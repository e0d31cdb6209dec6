package patients

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("patient not found")
)

// OwnerChecker evita el import directo de owners (mismo truco que
// el resolver de dueños en pets/accessgrants).
type OwnerChecker interface {
	Exists(ctx context.Context, ownerID string) bool
}

type Service struct {
	repo   Repository
	owners OwnerChecker
	now    func() time.Time
}

func NewService(repo Repository, owners OwnerChecker) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Gender    string
	BirthDate *time.Time
	WeightKg  float64
	Microchip string
	OwnerID   string
	Notes     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Patient, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Patient{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.OwnerID) == "" {
		return Patient{}, ErrInvalidInput
	}
	if s.owners != nil && !s.owners.Exists(ctx, strings.TrimSpace(in.OwnerID)) {
		return Patient{}, ErrInvalidInput
	}

	species := NormalizeSpecies(in.Species)
	gender := NormalizeGender(in.Gender)

	now := s.now()
	p := Patient{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Species:   species,
		Breed:     strings.TrimSpace(in.Breed),
		Gender:    gender,
		BirthDate: in.BirthDate,
		WeightKg:  in.WeightKg,
		Microchip: strings.TrimSpace(in.Microchip),
		OwnerID:   strings.TrimSpace(in.OwnerID),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

type UpdateInput struct {
	Name      *string
	Species   *string
	Breed     *string
	Gender    *string
	BirthDate *time.Time
	ClearBirthDate bool
	WeightKg  *float64
	Microchip *string
	Notes     *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Patient{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Patient{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		p.Species = NormalizeSpecies(*in.Species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		p.Gender = NormalizeGender(*in.Gender)
	}
	if in.ClearBirthDate {
		p.BirthDate = nil
	} else if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.WeightKg != nil {
		if *in.WeightKg < 0 {
			return Patient{}, ErrInvalidInput
		}
		p.WeightKg = *in.WeightKg
	}
	if in.Microchip != nil {
		p.Microchip = strings.TrimSpace(*in.Microchip)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Patient{}, err
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

func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Patient, int64, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Patient, error) {
	items, _, err := s.repo.List(ctx, ListFilter{OwnerID: strings.TrimSpace(ownerID)})
	return items, err
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// NormalizeSpecies acepta los valores en inglés del enum y los sinónimos en
// español que quedaron vivos de la migración de datos (perro, gato, ave...).
// El enum en inglés es el autoritativo.
func NormalizeSpecies(s string) Species {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DOG", "PERRO", "CANINO":
		return SpeciesDog
	case "CAT", "GATO", "FELINO":
		return SpeciesCat
	case "BIRD", "AVE", "PAJARO", "PÁJARO":
		return SpeciesBird
	case "RABBIT", "CONEJO":
		return SpeciesRabbit
	case "REPTILE", "REPTIL":
		return SpeciesReptile
	default:
		return SpeciesOther
	}
}

func NormalizeGender(s string) Gender {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MALE", "MACHO", "M":
		return GenderMale
	case "FEMALE", "HEMBRA", "F":
		return GenderFemale
	default:
		return GenderUnknown
	}
}
