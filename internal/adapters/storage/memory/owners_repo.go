package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vetclinic-admin/internal/domain/owners"
)

type ownersRepo struct {
	mu   sync.RWMutex
	byID map[string]owners.Owner
}

func NewOwnersRepo() owners.Repository {
	return &ownersRepo{byID: make(map[string]owners.Owner)}
}

func (r *ownersRepo) Create(_ context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[o.ID] = o
	return nil
}

func (r *ownersRepo) Update(_ context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[o.ID]; !ok {
		return owners.ErrNotFound
	}
	r.byID[o.ID] = o
	return nil
}

func (r *ownersRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return owners.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *ownersRepo) GetByID(_ context.Context, id string) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.byID[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownersRepo) GetByUserID(_ context.Context, userID string) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if strings.TrimSpace(userID) == "" {
		return owners.Owner{}, owners.ErrNotFound
	}
	for _, o := range r.byID {
		if o.UserID == userID {
			return o, nil
		}
	}
	return owners.Owner{}, owners.ErrNotFound
}

func (r *ownersRepo) List(_ context.Context, f owners.ListFilter) ([]owners.Owner, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]owners.Owner, 0, len(r.byID))
	for _, o := range r.byID {
		if search != "" {
			haystack := strings.ToLower(o.FullName() + " " + o.DocumentNumber + " " + o.Email)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	total := int64(len(out))
	return paginate(out, f.Page, f.Size), total, nil
}
