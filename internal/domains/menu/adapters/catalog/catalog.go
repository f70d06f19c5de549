package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	menuports "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
	ordersdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
	reportsports "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/ports"
)

var (
	_ ordersports.Catalog    = (*Catalog)(nil)
	_ reportsports.PriceBook = (*Catalog)(nil)
)

// Catalog exposes menu state to the orders and reports contexts.
type Catalog struct {
	repo menuports.Repository
}

func New(repo menuports.Repository) *Catalog {
	return &Catalog{repo: repo}
}

// Lookup returns the validation view of each known item in one store read.
func (c *Catalog) Lookup(ctx context.Context, ids []int64) (map[int64]ordersdomain.CatalogEntry, error) {
	items, err := c.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	entries := make(map[int64]ordersdomain.CatalogEntry, len(items))
	for _, item := range items {
		entries[item.ID] = ordersdomain.CatalogEntry{
			ID:        item.ID,
			Name:      item.Name,
			Available: item.Available,
			MaxQty:    item.MaxQty,
		}
	}
	return entries, nil
}

// Prices returns the current price of each known item.
func (c *Catalog) Prices(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	items, err := c.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	prices := make(map[int64]decimal.Decimal, len(items))
	for _, item := range items {
		prices[item.ID] = item.Price
	}
	return prices, nil
}
