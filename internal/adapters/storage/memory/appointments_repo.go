package memory

import (
	"context"
	"sort"
	"sync"

	"vetclinic-admin/internal/domain/appointments"
)

type appointmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentsRepo() appointments.Repository {
	return &appointmentsRepo{byID: make(map[string]appointments.Appointment)}
}

func (r *appointmentsRepo) Create(_ context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentsRepo) Update(_ context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return appointments.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentsRepo) GetByID(_ context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentsRepo) List(_ context.Context, f appointments.ListFilter) ([]appointments.Appointment, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.filter(f)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})

	total := int64(len(out))
	return paginate(out, f.Page, f.Size), total, nil
}

func (r *appointmentsRepo) Count(_ context.Context, f appointments.ListFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.filter(f))), nil
}

// filter aplica los criterios; el rango es [From, To).
func (r *appointmentsRepo) filter(f appointments.ListFilter) []appointments.Appointment {
	out := make([]appointments.Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		if f.PatientID != "" && a.PatientID != f.PatientID {
			continue
		}
		if f.VeterinarianID != "" && a.VeterinarianID != f.VeterinarianID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if !f.From.IsZero() && a.ScheduledDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !a.ScheduledDate.Before(f.To) {
			continue
		}
		out = append(out, a)
	}
	return out
}
