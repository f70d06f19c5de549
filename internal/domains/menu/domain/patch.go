package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Patch carries the subset of fields a caller wants to change. Nil means untouched.
type Patch struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	Available   *bool
	MaxQty      *int
	Category    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil &&
		p.Price == nil &&
		p.Description == nil &&
		p.Available == nil &&
		p.MaxQty == nil &&
		p.Category == nil
}

// Normalize validates the patch and applies the same coercions as Item setters,
// so adapters can persist it in a single statement.
func (p Patch) Normalize() (Patch, error) {
	out := p
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return Patch{}, ErrEmptyName
		}
		out.Name = &name
	}
	if p.Price != nil {
		if p.Price.IsNegative() {
			return Patch{}, ErrNegativePrice
		}
		price := RoundPrice(*p.Price)
		out.Price = &price
	}
	if p.MaxQty != nil {
		maxQty := NormalizeMaxQty(*p.MaxQty)
		out.MaxQty = &maxQty
	}
	if p.Category != nil {
		category := NormalizeCategory(*p.Category)
		out.Category = &category
	}
	return out, nil
}
