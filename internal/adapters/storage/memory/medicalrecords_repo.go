package memory

import (
	"context"
	"sort"
	"sync"

	"vetclinic-admin/internal/domain/medicalrecords"
)

type medicalRecordsRepo struct {
	mu   sync.RWMutex
	byID map[string]medicalrecords.MedicalRecord
}

func NewMedicalRecordsRepo() medicalrecords.Repository {
	return &medicalRecordsRepo{byID: make(map[string]medicalrecords.MedicalRecord)}
}

func (r *medicalRecordsRepo) Create(_ context.Context, rec medicalrecords.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec
	return nil
}

func (r *medicalRecordsRepo) Update(_ context.Context, rec medicalrecords.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rec.ID]; !ok {
		return medicalrecords.ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *medicalRecordsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return medicalrecords.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *medicalRecordsRepo) GetByID(_ context.Context, id string) (medicalrecords.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return medicalrecords.MedicalRecord{}, medicalrecords.ErrNotFound
	}
	return rec, nil
}

func (r *medicalRecordsRepo) List(_ context.Context, f medicalrecords.ListFilter) ([]medicalrecords.MedicalRecord, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicalrecords.MedicalRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		if f.PatientID != "" && rec.PatientID != f.PatientID {
			continue
		}
		if f.VeterinarianID != "" && rec.VeterinarianID != f.VeterinarianID {
			continue
		}
		out = append(out, rec)
	}

	// Lo más reciente primero.
	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordDate.After(out[j].RecordDate)
	})

	total := int64(len(out))
	return paginate(out, f.Page, f.Size), total, nil
}
