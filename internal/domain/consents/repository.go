package consents

import "context"

type ListFilter struct {
	PatientID string
	OwnerID   string
	Status    ConsentStatus
	Page      int
	Size      int
}

type Repository interface {
	Create(ctx context.Context, c InformedConsent) error
	Update(ctx context.Context, c InformedConsent) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (InformedConsent, error)
	List(ctx context.Context, f ListFilter) ([]InformedConsent, int64, error)
}
