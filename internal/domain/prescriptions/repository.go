package prescriptions

import "context"

type ListFilter struct {
	PatientID       string
	MedicalRecordID string
	Page            int
	Size            int
}

type Repository interface {
	Create(ctx context.Context, p Prescription) error
	Update(ctx context.Context, p Prescription) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Prescription, error)
	List(ctx context.Context, f ListFilter) ([]Prescription, int64, error)
}
