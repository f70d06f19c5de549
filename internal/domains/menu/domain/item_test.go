package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem_AppliesDefaults(t *testing.T) {
	item, err := NewItem("  Dosa ", decimal.RequireFromString("2.50"))
	require.NoError(t, err)
	assert.Equal(t, "Dosa", item.Name)
	assert.True(t, item.Available)
	assert.Equal(t, DefaultMaxQty, item.MaxQty)
	assert.Equal(t, DefaultCategory, item.Category)
}

func TestNewItem_RejectsInvalidInput(t *testing.T) {
	_, err := NewItem("   ", decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewItem("Idli", decimal.NewFromInt(-1))
	require.ErrorIs(t, err, ErrNegativePrice)
}

func TestApply_CoercesMaxQtyAndCategory(t *testing.T) {
	item, err := NewItem("Thali", decimal.RequireFromString("6.50"))
	require.NoError(t, err)

	zero := 0
	blank := " "
	require.NoError(t, item.Apply(Patch{MaxQty: &zero, Category: &blank}))
	assert.Equal(t, 1, item.MaxQty)
	assert.Equal(t, DefaultCategory, item.Category)
}

func TestPatchNormalize(t *testing.T) {
	empty := ""
	_, err := Patch{Name: &empty}.Normalize()
	require.ErrorIs(t, err, ErrEmptyName)

	negative := decimal.NewFromInt(-2)
	_, err = Patch{Price: &negative}.Normalize()
	require.ErrorIs(t, err, ErrNegativePrice)

	maxQty := -5
	normalized, err := Patch{MaxQty: &maxQty}.Normalize()
	require.NoError(t, err)
	require.NotNil(t, normalized.MaxQty)
	assert.Equal(t, 1, *normalized.MaxQty)
	assert.Equal(t, -5, maxQty)

	assert.True(t, Patch{}.IsEmpty())
	assert.False(t, normalized.IsEmpty())
}

func TestPricesAreKeptToCents(t *testing.T) {
	item, err := NewItem("Vada", decimal.RequireFromString("1.555"))
	require.NoError(t, err)
	assert.Equal(t, "1.56", item.Price.String())

	fine := decimal.RequireFromString("2.004")
	require.NoError(t, item.Apply(Patch{Price: &fine}))
	assert.Equal(t, "2", item.Price.String())

	normalized, err := Patch{Price: &fine}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "2", normalized.Price.String())
	assert.Equal(t, "2.004", fine.String())
}
