package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	if clone.Status == "" {
		clone.Status = domain.StatusPending
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, order.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *Repository) UpdateStatus(_ context.Context, id int64, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := order.UpdateStatus(status); err != nil {
		return nil, err
	}
	return order.Clone(), nil
}

func (r *Repository) ListCreatedBetween(_ context.Context, from, to time.Time) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Order
	for _, order := range r.orders {
		if order.CreatedAt.Before(from) || !order.CreatedAt.Before(to) {
			continue
		}
		list = append(list, order.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
