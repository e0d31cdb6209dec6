package medicalrecords

import "context"

type ListFilter struct {
	PatientID      string
	VeterinarianID string
	Page           int
	Size           int
}

type Repository interface {
	Create(ctx context.Context, rec MedicalRecord) error
	Update(ctx context.Context, rec MedicalRecord) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (MedicalRecord, error)
	// List ordena por RecordDate descendente (lo más reciente primero).
	List(ctx context.Context, f ListFilter) ([]MedicalRecord, int64, error)
}
