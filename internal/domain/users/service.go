package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vetclinic-admin/internal/platform/token"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("user not found")
	ErrDuplicate     = errors.New("username or email already taken")
	ErrBadCredential = errors.New("wrong password")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Roles     []string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username == "" || in.Email == "" || len(in.Password) < 6 {
		return User{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByUsername(ctx, in.Username); err == nil {
		return User{}, ErrDuplicate
	}
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, ErrDuplicate
	}

	hash, err := token.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	roles := make([]string, 0, len(in.Roles))
	for _, r := range in.Roles {
		roles = append(roles, NormalizeRole(r))
	}
	if len(roles) == 0 {
		roles = []string{RoleReceptionist}
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		Roles:        roles,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type UpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Roles     []string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return User{}, ErrInvalidInput
		}
		if other, err := s.repo.GetByEmail(ctx, email); err == nil && other.ID != u.ID {
			return User{}, ErrDuplicate
		}
		u.Email = email
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Roles != nil {
		roles := make([]string, 0, len(in.Roles))
		for _, r := range in.Roles {
			roles = append(roles, NormalizeRole(r))
		}
		if len(roles) == 0 {
			return User{}, ErrInvalidInput
		}
		u.Roles = roles
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// ToggleActive habilita o deshabilita el acceso del usuario.
func (s *Service) ToggleActive(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	u.Active = !u.Active
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// ChangePassword exige la contraseña vigente antes de reemplazarla.
func (s *Service) ChangePassword(ctx context.Context, id, current, newPassword string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !token.CheckPassword(u.PasswordHash, current) {
		return ErrBadCredential
	}
	if len(newPassword) < 6 {
		return ErrInvalidInput
	}
	hash, err := token.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = s.now()
	return s.repo.Update(ctx, u)
}

// ResetPassword reemplaza la contraseña sin pedir la anterior; lo usa
// el flujo de recuperación con token.
func (s *Service) ResetPassword(ctx context.Context, id, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := token.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = s.now()
	return s.repo.Update(ctx, u)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]User, int64, error) {
	return s.repo.List(ctx, f)
}

// Veterinarians lista las cuentas con rol VETERINARIAN, para los
// selectores de la agenda.
func (s *Service) Veterinarians(ctx context.Context) ([]User, error) {
	items, _, err := s.repo.List(ctx, ListFilter{Role: RoleVeterinarian})
	return items, err
}
