package application

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
)

// Service orchestrates the menu use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the menu service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// List returns every item ordered by category, then id.
func (s *Service) List(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// GetByID loads a single item.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetByID(ctx, id)
}

// Upsert creates an item, or updates the provided fields when an item with the
// same name (case-insensitive) already exists.
func (s *Service) Upsert(ctx context.Context, input ports.UpsertInput) (*ports.UpsertResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, mapError(domain.ErrEmptyName)
	}
	patch := domain.Patch{
		Price:       input.Price,
		Description: input.Description,
		Available:   input.Available,
		MaxQty:      input.MaxQty,
		Category:    input.Category,
	}

	existing, err := s.repo.FindByName(ctx, name)
	switch {
	case err == nil:
		if patch.IsEmpty() {
			return &ports.UpsertResult{Item: existing}, nil
		}
		updated, err := s.update(ctx, existing.ID, patch)
		if err != nil {
			return nil, err
		}
		return &ports.UpsertResult{Item: updated, Updated: true}, nil
	case !errors.Is(err, ports.ErrNotFound):
		return nil, err
	}

	if input.Price == nil {
		return nil, mapError(domain.ErrMissingPrice)
	}
	item, err := domain.NewItem(name, *input.Price)
	if err != nil {
		return nil, mapError(err)
	}
	if err := item.Apply(patch); err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	return &ports.UpsertResult{Item: created, Created: true}, nil
}

// Update applies a partial mutation to an existing item.
func (s *Service) Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Item, error) {
	if patch.IsEmpty() {
		return nil, mapError(domain.ErrNoFields)
	}
	return s.update(ctx, id, patch)
}

// SetAvailability toggles whether the item can be ordered.
func (s *Service) SetAvailability(ctx context.Context, id int64, available bool) (*domain.Item, error) {
	return s.update(ctx, id, domain.Patch{Available: &available})
}

// SeedIfEmpty inserts the given items only when the menu has none yet.
func (s *Service) SeedIfEmpty(ctx context.Context, items []ports.SeedItem) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	seeded := 0
	for _, seed := range items {
		item, err := domain.NewItem(seed.Name, seed.Price)
		if err != nil {
			return seeded, mapError(err)
		}
		item.Description = seed.Description
		if _, err := s.repo.Create(ctx, item); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}

func (s *Service) update(ctx context.Context, id int64, patch domain.Patch) (*domain.Item, error) {
	normalized, err := patch.Normalize()
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, id, normalized)
}

var _ ports.Service = (*Service)(nil)
