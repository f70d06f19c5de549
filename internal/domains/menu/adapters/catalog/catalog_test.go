package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	menumemory "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/adapters/memory"
	menuapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/application"
)

func seededCatalog(t *testing.T) (*Catalog, *menuapp.Service) {
	t.Helper()
	repo := menumemory.NewRepository()
	svc := menuapp.NewService(repo)
	_, err := svc.SeedIfEmpty(context.Background(), menuapp.DefaultSeed())
	require.NoError(t, err)
	return New(repo), svc
}

func TestCatalog_LookupSkipsUnknownIDs(t *testing.T) {
	catalog, svc := seededCatalog(t)
	_, err := svc.SetAvailability(context.Background(), 2, false)
	require.NoError(t, err)

	entries, err := catalog.Lookup(context.Background(), []int64{1, 2, 42})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Idli", entries[1].Name)
	assert.True(t, entries[1].Available)
	assert.Equal(t, 10, entries[1].MaxQty)
	assert.False(t, entries[2].Available)
	_, found := entries[42]
	assert.False(t, found)
}

func TestCatalog_PricesReflectCurrentMenu(t *testing.T) {
	catalog, _ := seededCatalog(t)

	prices, err := catalog.Prices(context.Background(), []int64{1, 4})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.50").Equal(prices[1]))
	assert.True(t, decimal.RequireFromString("6.50").Equal(prices[4]))
}
