package memory

import (
	"context"
	"sort"
	"sync"

	"vetclinic-admin/internal/domain/consents"
)

type consentsRepo struct {
	mu   sync.RWMutex
	byID map[string]consents.InformedConsent
}

func NewConsentsRepo() consents.Repository {
	return &consentsRepo{byID: make(map[string]consents.InformedConsent)}
}

func (r *consentsRepo) Create(_ context.Context, c consents.InformedConsent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = c
	return nil
}

func (r *consentsRepo) Update(_ context.Context, c consents.InformedConsent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return consents.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *consentsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return consents.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *consentsRepo) GetByID(_ context.Context, id string) (consents.InformedConsent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return consents.InformedConsent{}, consents.ErrNotFound
	}
	return c, nil
}

func (r *consentsRepo) List(_ context.Context, f consents.ListFilter) ([]consents.InformedConsent, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]consents.InformedConsent, 0, len(r.byID))
	for _, c := range r.byID {
		if f.PatientID != "" && c.PatientID != f.PatientID {
			continue
		}
		if f.OwnerID != "" && c.OwnerID != f.OwnerID {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	total := int64(len(out))
	return paginate(out, f.Page, f.Size), total, nil
}
