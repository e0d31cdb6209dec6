package owners

import "context"

// ListFilter aplica búsqueda por substring y paginación server-driven.
// Size <= 0 significa "sin paginar" (hasta el tope del handler).
type ListFilter struct {
	Search string
	Page   int
	Size   int
}

type Repository interface {
	Create(ctx context.Context, o Owner) error
	Update(ctx context.Context, o Owner) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Owner, error)
	GetByUserID(ctx context.Context, userID string) (Owner, error)
	List(ctx context.Context, f ListFilter) ([]Owner, int64, error)
}
