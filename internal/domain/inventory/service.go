package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("inventory item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name           string
	Category       string
	Description    string
	Quantity       int
	MinQuantity    int
	UnitPrice      float64
	Supplier       string
	ExpirationDate *time.Time
}

func (s *Service) Create(ctx context.Context, in CreateInput) (InventoryItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return InventoryItem{}, ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinQuantity < 0 || in.UnitPrice < 0 {
		return InventoryItem{}, ErrInvalidInput
	}

	now := s.now()
	item := InventoryItem{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Category:       NormalizeCategory(in.Category),
		Description:    strings.TrimSpace(in.Description),
		Quantity:       in.Quantity,
		MinQuantity:    in.MinQuantity,
		UnitPrice:      in.UnitPrice,
		Supplier:       strings.TrimSpace(in.Supplier),
		ExpirationDate: in.ExpirationDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return InventoryItem{}, err
	}
	return item, nil
}

type UpdateInput struct {
	Name           *string
	Category       *string
	Description    *string
	Quantity       *int
	MinQuantity    *int
	UnitPrice      *float64
	Supplier       *string
	ExpirationDate *time.Time
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (InventoryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return InventoryItem{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return InventoryItem{}, ErrInvalidInput
		}
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		item.Category = NormalizeCategory(*in.Category)
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return InventoryItem{}, ErrInvalidInput
		}
		item.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return InventoryItem{}, ErrInvalidInput
		}
		item.MinQuantity = *in.MinQuantity
	}
	if in.UnitPrice != nil {
		if *in.UnitPrice < 0 {
			return InventoryItem{}, ErrInvalidInput
		}
		item.UnitPrice = *in.UnitPrice
	}
	if in.Supplier != nil {
		item.Supplier = strings.TrimSpace(*in.Supplier)
	}
	if in.ExpirationDate != nil {
		item.ExpirationDate = in.ExpirationDate
	}

	item.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, item); err != nil {
		return InventoryItem{}, err
	}
	return item, nil
}

// AdjustQuantity suma delta (negativo descuenta). Nunca deja stock negativo.
func (s *Service) AdjustQuantity(ctx context.Context, id string, delta int) (InventoryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return InventoryItem{}, err
	}
	if item.Quantity+delta < 0 {
		return InventoryItem{}, ErrInsufficientStock
	}

	item.Quantity += delta
	item.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, item); err != nil {
		return InventoryItem{}, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (InventoryItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]InventoryItem, int64, error) {
	return s.repo.List(ctx, f)
}

// LowStock devuelve ítems con stock bajo (0 < q <= min).
func (s *Service) LowStock(ctx context.Context) ([]InventoryItem, error) {
	return s.filterByStatus(ctx, StockLow)
}

// OutOfStock devuelve ítems agotados.
func (s *Service) OutOfStock(ctx context.Context) ([]InventoryItem, error) {
	return s.filterByStatus(ctx, StockOut)
}

// Expiring devuelve ítems que vencen dentro de los próximos días.
func (s *Service) Expiring(ctx context.Context, days int) ([]InventoryItem, error) {
	if days <= 0 {
		days = 30
	}
	items, _, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]InventoryItem, 0)
	for _, item := range items {
		if item.ExpiresWithin(now, days) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *Service) filterByStatus(ctx context.Context, status StockStatus) ([]InventoryItem, error) {
	items, _, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]InventoryItem, 0)
	for _, item := range items {
		if item.Status() == status {
			out = append(out, item)
		}
	}
	return out, nil
}
