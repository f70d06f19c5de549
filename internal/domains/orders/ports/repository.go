package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. Orders are never deleted.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// List returns every order, newest first.
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error)
	// ListCreatedBetween returns orders created in [from, to).
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.Order, error)
}
