package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vetclinic-admin/internal/domain/inventory"
)

type inventoryRepo struct {
	mu   sync.RWMutex
	byID map[string]inventory.InventoryItem
}

func NewInventoryRepo() inventory.Repository {
	return &inventoryRepo{byID: make(map[string]inventory.InventoryItem)}
}

func (r *inventoryRepo) Create(_ context.Context, item inventory.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.ID] = item
	return nil
}

func (r *inventoryRepo) Update(_ context.Context, item inventory.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[item.ID]; !ok {
		return inventory.ErrNotFound
	}
	r.byID[item.ID] = item
	return nil
}

func (r *inventoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return inventory.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *inventoryRepo) GetByID(_ context.Context, id string) (inventory.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.byID[id]
	if !ok {
		return inventory.InventoryItem{}, inventory.ErrNotFound
	}
	return item, nil
}

func (r *inventoryRepo) List(_ context.Context, f inventory.ListFilter) ([]inventory.InventoryItem, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]inventory.InventoryItem, 0, len(r.byID))
	for _, item := range r.byID {
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(item.Name + " " + item.Supplier)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	total := int64(len(out))
	return paginate(out, f.Page, f.Size), total, nil
}
