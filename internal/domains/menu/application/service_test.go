package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/adapters/memory"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
)

func price(t *testing.T, value string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return &d
}

func TestUpsert_CreatesWithDefaults(t *testing.T) {
	svc := NewService(memory.NewRepository())

	result, err := svc.Upsert(context.Background(), ports.UpsertInput{Name: " Vada ", Price: price(t, "1.75")})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.False(t, result.Updated)
	assert.Equal(t, "Vada", result.Item.Name)
	assert.True(t, result.Item.Available)
	assert.Equal(t, domain.DefaultMaxQty, result.Item.MaxQty)
	assert.Equal(t, domain.DefaultCategory, result.Item.Category)
}

func TestUpsert_UpdatesExistingByNameIgnoringCase(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	first, err := svc.Upsert(ctx, ports.UpsertInput{Name: "Dosa", Price: price(t, "2.50")})
	require.NoError(t, err)

	available := false
	result, err := svc.Upsert(ctx, ports.UpsertInput{Name: "DOSA", Price: price(t, "3.00"), Available: &available})
	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.False(t, result.Created)
	assert.Equal(t, first.Item.ID, result.Item.ID)
	assert.Equal(t, "Dosa", result.Item.Name)
	assert.Equal(t, "3.00", result.Item.Price.StringFixed(2))
	assert.False(t, result.Item.Available)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestUpsert_ExistingWithoutFieldsIsUnchanged(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	_, err := svc.Upsert(ctx, ports.UpsertInput{Name: "Idli", Price: price(t, "1.50")})
	require.NoError(t, err)

	result, err := svc.Upsert(ctx, ports.UpsertInput{Name: "idli"})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.False(t, result.Updated)
	assert.Equal(t, "1.50", result.Item.Price.StringFixed(2))
}

func TestUpsert_RejectsInvalidInput(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	_, err := svc.Upsert(ctx, ports.UpsertInput{Name: "   ", Price: price(t, "1")})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.Upsert(ctx, ports.UpsertInput{Name: "Thali"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrMissingPrice)

	_, err = svc.Upsert(ctx, ports.UpsertInput{Name: "Thali", Price: price(t, "-1")})
	require.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestUpsert_CoercesMaxQtyAndCategory(t *testing.T) {
	svc := NewService(memory.NewRepository())
	zero := 0
	blank := ""

	result, err := svc.Upsert(context.Background(), ports.UpsertInput{Name: "Lassi", Price: price(t, "1.20"), MaxQty: &zero, Category: &blank})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Item.MaxQty)
	assert.Equal(t, domain.DefaultCategory, result.Item.Category)
}

func TestUpdate_RequiresFields(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()
	created, err := svc.Upsert(ctx, ports.UpsertInput{Name: "Idli", Price: price(t, "1.50")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.Item.ID, domain.Patch{})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNoFields)

	desc := "steamed"
	updated, err := svc.Update(ctx, created.Item.ID, domain.Patch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "steamed", updated.Description)

	_, err = svc.Update(ctx, 999, domain.Patch{Description: &desc})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdate_RenameToExistingNameConflicts(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()
	_, err := svc.Upsert(ctx, ports.UpsertInput{Name: "Idli", Price: price(t, "1.50")})
	require.NoError(t, err)
	dosa, err := svc.Upsert(ctx, ports.UpsertInput{Name: "Dosa", Price: price(t, "2.50")})
	require.NoError(t, err)

	name := "IDLI"
	_, err = svc.Update(ctx, dosa.Item.ID, domain.Patch{Name: &name})
	require.ErrorIs(t, err, ports.ErrDuplicateName)
}

func TestSetAvailability_IsIdempotent(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()
	created, err := svc.Upsert(ctx, ports.UpsertInput{Name: "Dosa", Price: price(t, "2.50")})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		item, err := svc.SetAvailability(ctx, created.Item.ID, false)
		require.NoError(t, err)
		assert.False(t, item.Available)
	}

	_, err = svc.SetAvailability(ctx, 404, true)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSeedIfEmpty_OnlySeedsEmptyMenu(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	seeded, err := svc.SeedIfEmpty(ctx, DefaultSeed())
	require.NoError(t, err)
	assert.Equal(t, 4, seeded)

	seeded, err = svc.SeedIfEmpty(ctx, DefaultSeed())
	require.NoError(t, err)
	assert.Zero(t, seeded)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "Idli", items[0].Name)
	assert.Equal(t, "1.50", items[0].Price.StringFixed(2))
}

func TestList_OrdersByCategoryThenID(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()
	drinks := "Drinks"
	mains := "Mains"

	_, err := svc.Upsert(ctx, ports.UpsertInput{Name: "Thali", Price: price(t, "6.50"), Category: &mains})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, ports.UpsertInput{Name: "Lassi", Price: price(t, "1.20"), Category: &drinks})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, ports.UpsertInput{Name: "Chai", Price: price(t, "0.80"), Category: &drinks})
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	names := []string{items[0].Name, items[1].Name, items[2].Name}
	assert.Equal(t, []string{"Lassi", "Chai", "Thali"}, names)
}
