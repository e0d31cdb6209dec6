package patients

import "context"

type ListFilter struct {
	Search  string
	Species string
	OwnerID string
	Page    int
	Size    int
}

type Repository interface {
	Create(ctx context.Context, p Patient) error
	Update(ctx context.Context, p Patient) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Patient, error)
	List(ctx context.Context, f ListFilter) ([]Patient, int64, error)
	Count(ctx context.Context) (int64, error)
}
