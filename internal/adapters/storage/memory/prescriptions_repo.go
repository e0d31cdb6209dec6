package memory

import (
	"context"
	"sort"
	"sync"

	"vetclinic-admin/internal/domain/prescriptions"
)

type prescriptionsRepo struct {
	mu   sync.RWMutex
	byID map[string]prescriptions.Prescription
}

func NewPrescriptionsRepo() prescriptions.Repository {
	return &prescriptionsRepo{byID: make(map[string]prescriptions.Prescription)}
}

func (r *prescriptionsRepo) Create(_ context.Context, p prescriptions.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}

func (r *prescriptionsRepo) Update(_ context.Context, p prescriptions.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return prescriptions.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *prescriptionsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return prescriptions.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *prescriptionsRepo) GetByID(_ context.Context, id string) (prescriptions.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return prescriptions.Prescription{}, prescriptions.ErrNotFound
	}
	return p, nil
}

func (r *prescriptionsRepo) List(_ context.Context, f prescriptions.ListFilter) ([]prescriptions.Prescription, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prescriptions.Prescription, 0, len(r.byID))
	for _, p := range r.byID {
		if f.PatientID != "" && p.PatientID != f.PatientID {
			continue
		}
		if f.MedicalRecordID != "" && p.MedicalRecordID != f.MedicalRecordID {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})

	total := int64(len(out))
	return paginate(out, f.Page, f.Size), total, nil
}
