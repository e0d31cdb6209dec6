package appointments

import (
	"context"
	"time"
)

type ListFilter struct {
	PatientID      string
	VeterinarianID string
	Status         Status

	// Rango [From, To) sobre scheduledDate; cero = sin límite.
	From time.Time
	To   time.Time

	Page int
	Size int
}

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context, f ListFilter) ([]Appointment, int64, error)
	Count(ctx context.Context, f ListFilter) (int64, error)
}
