package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/domain"
)

var (
	ErrNotFound      = errors.New("menu item not found")
	ErrDuplicateName = errors.New("menu item name already exists")
)

// Repository persists menu items. Items are never deleted.
type Repository interface {
	List(ctx context.Context) ([]*domain.Item, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	// FindByName matches case-insensitively and returns ErrNotFound when absent.
	FindByName(ctx context.Context, name string) (*domain.Item, error)
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	// Update applies every field of a normalized patch at once, or none.
	Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Item, error)
	Count(ctx context.Context) (int64, error)
}
