package inventory

import "context"

type ListFilter struct {
	Search   string
	Category Category
	Page     int
	Size     int
}

type Repository interface {
	Create(ctx context.Context, item InventoryItem) error
	Update(ctx context.Context, item InventoryItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (InventoryItem, error)
	List(ctx context.Context, f ListFilter) ([]InventoryItem, int64, error)
}
