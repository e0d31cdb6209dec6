package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vetclinic-admin/internal/domain/clinicservices"
)

type clinicServicesRepo struct {
	mu   sync.RWMutex
	byID map[string]clinicservices.ClinicService
}

func NewClinicServicesRepo() clinicservices.Repository {
	return &clinicServicesRepo{byID: make(map[string]clinicservices.ClinicService)}
}

func (r *clinicServicesRepo) Create(_ context.Context, s clinicservices.ClinicService) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = s
	return nil
}

func (r *clinicServicesRepo) Update(_ context.Context, s clinicservices.ClinicService) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; !ok {
		return clinicservices.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *clinicServicesRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return clinicservices.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *clinicServicesRepo) GetByID(_ context.Context, id string) (clinicservices.ClinicService, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return clinicservices.ClinicService{}, clinicservices.ErrNotFound
	}
	return s, nil
}

func (r *clinicServicesRepo) List(_ context.Context, f clinicservices.ListFilter) ([]clinicservices.ClinicService, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]clinicservices.ClinicService, 0, len(r.byID))
	for _, s := range r.byID {
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if f.OnlyActive && !s.Active {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(s.Name), search) {
			continue
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	total := int64(len(out))
	return paginate(out, f.Page, f.Size), total, nil
}
