package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/domain"
)

// UpsertInput is the create-or-update-by-name command. Nil fields were absent.
type UpsertInput struct {
	Name        string
	Price       *decimal.Decimal
	Description *string
	Available   *bool
	MaxQty      *int
	Category    *string
}

// UpsertResult reports which branch an upsert took.
type UpsertResult struct {
	Item    *domain.Item
	Created bool
	Updated bool
}

// SeedItem describes a dish inserted into an empty menu.
type SeedItem struct {
	Name        string
	Price       decimal.Decimal
	Description string
}

// Service defines the menu use cases exposed to adapters.
type Service interface {
	List(ctx context.Context) ([]*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Upsert(ctx context.Context, input UpsertInput) (*UpsertResult, error)
	Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Item, error)
	SetAvailability(ctx context.Context, id int64, available bool) (*domain.Item, error)
	SeedIfEmpty(ctx context.Context, items []SeedItem) (int, error)
}
