package clinicservices

import "context"

type ListFilter struct {
	Search     string
	Category   ServiceCategory
	OnlyActive bool
	Page       int
	Size       int
}

type Repository interface {
	Create(ctx context.Context, s ClinicService) error
	Update(ctx context.Context, s ClinicService) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (ClinicService, error)
	List(ctx context.Context, f ListFilter) ([]ClinicService, int64, error)
}
