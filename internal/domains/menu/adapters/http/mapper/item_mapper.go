package mapper

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
)

// MutationItem captures inbound menu payloads while preserving field presence.
// A JSON null is treated the same as an absent field.
type MutationItem struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Available   *bool            `json:"available"`
	MaxQty      *int             `json:"max_qty"`
	Category    *string          `json:"category"`
}

// Availability is the body of the availability toggle.
type Availability struct {
	Available *bool `json:"available" binding:"required"`
}

// Item is the HTTP representation of a menu item.
type Item struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	Available   bool        `json:"available"`
	MaxQty      int         `json:"max_qty"`
	Category    string      `json:"category"`
	Created     bool        `json:"created,omitempty"`
	Updated     bool        `json:"updated,omitempty"`
}

// ToUpsertInput maps a POST body into the create-or-update command.
func ToUpsertInput(payload MutationItem) ports.UpsertInput {
	input := ports.UpsertInput{
		Price:       payload.Price,
		Description: payload.Description,
		Available:   payload.Available,
		MaxQty:      payload.MaxQty,
		Category:    payload.Category,
	}
	if payload.Name != nil {
		input.Name = *payload.Name
	}
	return input
}

// ToPatch maps a PUT body into a partial update.
func ToPatch(payload MutationItem) domain.Patch {
	return domain.Patch{
		Name:        payload.Name,
		Price:       payload.Price,
		Description: payload.Description,
		Available:   payload.Available,
		MaxQty:      payload.MaxQty,
		Category:    payload.Category,
	}
}

// FromDomain converts a domain item to its transport shape.
func FromDomain(item *domain.Item) Item {
	if item == nil {
		return Item{}
	}
	return Item{
		ID:          item.ID,
		Name:        item.Name,
		Price:       json.Number(item.Price.StringFixed(2)),
		Description: item.Description,
		Available:   item.Available,
		MaxQty:      item.MaxQty,
		Category:    item.Category,
	}
}

// FromUpsertResult adds the created/updated markers to the item.
func FromUpsertResult(result *ports.UpsertResult) Item {
	if result == nil {
		return Item{}
	}
	out := FromDomain(result.Item)
	out.Created = result.Created
	out.Updated = result.Updated
	return out
}

func FromDomainList(items []*domain.Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		out = append(out, FromDomain(item))
	}
	return out
}
