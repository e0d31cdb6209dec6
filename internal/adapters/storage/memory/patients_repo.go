package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vetclinic-admin/internal/domain/patients"
)

type patientsRepo struct {
	mu   sync.RWMutex
	byID map[string]patients.Patient
}

func NewPatientsRepo() patients.Repository {
	return &patientsRepo{byID: make(map[string]patients.Patient)}
}

func (r *patientsRepo) Create(_ context.Context, p patients.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}

func (r *patientsRepo) Update(_ context.Context, p patients.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return patients.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *patientsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return patients.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *patientsRepo) GetByID(_ context.Context, id string) (patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return patients.Patient{}, patients.ErrNotFound
	}
	return p, nil
}

func (r *patientsRepo) List(_ context.Context, f patients.ListFilter) ([]patients.Patient, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]patients.Patient, 0, len(r.byID))
	for _, p := range r.byID {
		if f.OwnerID != "" && p.OwnerID != f.OwnerID {
			continue
		}
		if f.Species != "" && string(p.Species) != f.Species {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(p.Name + " " + p.Breed)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	total := int64(len(out))
	return paginate(out, f.Page, f.Size), total, nil
}

func (r *patientsRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}
