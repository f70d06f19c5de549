package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory menu persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]*domain.Item
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: map[int64]*domain.Item{}}
}

func (r *Repository) List(_ context.Context) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Item, 0, len(r.items))
	for _, item := range r.items {
		clone := *item
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) ListByIDs(_ context.Context, ids []int64) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Item, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := r.items[id]; ok {
			clone := *item
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *Repository) FindByName(_ context.Context, name string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if item := r.findByNameLocked(name); item != nil {
		clone := *item
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("menu item is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findByNameLocked(item.Name) != nil {
		return nil, ports.ErrDuplicateName
	}
	clone := *item
	r.nextID++
	clone.ID = r.nextID
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, id int64, patch domain.Patch) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if patch.Name != nil {
		if other := r.findByNameLocked(*patch.Name); other != nil && other.ID != id {
			return nil, ports.ErrDuplicateName
		}
	}
	clone := *current
	if err := clone.Apply(patch); err != nil {
		return nil, err
	}
	r.items[id] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *Repository) findByNameLocked(name string) *domain.Item {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, item := range r.items {
		if strings.ToLower(item.Name) == key {
			return item
		}
	}
	return nil
}
