package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCategory groups items that were created without a category.
	DefaultCategory = "General"
	// DefaultMaxQty is the per-order cap applied when none is supplied.
	DefaultMaxQty = 10
)

var (
	ErrEmptyName     = errors.New("name required")
	ErrMissingPrice  = errors.New("price required for new item")
	ErrNegativePrice = errors.New("price must be non-negative")
	ErrNoFields      = errors.New("no fields provided")
)

// Item is a single dish on the menu.
type Item struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Description string
	Available   bool
	MaxQty      int
	Category    string
}

// NewItem validates the invariants and builds a menu item with defaults applied.
func NewItem(name string, price decimal.Decimal) (*Item, error) {
	item := &Item{
		Available: true,
		MaxQty:    DefaultMaxQty,
		Category:  DefaultCategory,
	}
	if err := item.Rename(name); err != nil {
		return nil, err
	}
	if err := item.Reprice(price); err != nil {
		return nil, err
	}
	return item, nil
}

// Rename sets a trimmed, non-empty name.
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	i.Name = name
	return nil
}

// PriceScale is the number of decimal places kept for prices.
const PriceScale = 2

// Reprice rejects negative prices and stores the price rounded to cents.
func (i *Item) Reprice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	i.Price = RoundPrice(price)
	return nil
}

// SetMaxQty stores the cap, coercing anything below one up to one.
func (i *Item) SetMaxQty(maxQty int) {
	i.MaxQty = NormalizeMaxQty(maxQty)
}

// SetCategory stores the category, falling back to DefaultCategory.
func (i *Item) SetCategory(category string) {
	i.Category = NormalizeCategory(category)
}

// Apply mutates the item with every field present in the patch.
func (i *Item) Apply(p Patch) error {
	if p.Name != nil {
		if err := i.Rename(*p.Name); err != nil {
			return err
		}
	}
	if p.Price != nil {
		if err := i.Reprice(*p.Price); err != nil {
			return err
		}
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Available != nil {
		i.Available = *p.Available
	}
	if p.MaxQty != nil {
		i.SetMaxQty(*p.MaxQty)
	}
	if p.Category != nil {
		i.SetCategory(*p.Category)
	}
	return nil
}

// NormalizeMaxQty coerces a requested cap to at least one.
func NormalizeMaxQty(maxQty int) int {
	if maxQty < 1 {
		return 1
	}
	return maxQty
}

// NormalizeCategory trims the category and defaults blanks to DefaultCategory.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return category
}

// RoundPrice rounds to the two decimal places the menu_items.price column keeps.
func RoundPrice(price decimal.Decimal) decimal.Decimal {
	return price.Round(PriceScale)
}
