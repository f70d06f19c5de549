package mapper

import (
	"time"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
)

// TimestampLayout renders creation instants in UTC with microseconds and a Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Line is one requested item in an order payload.
type Line struct {
	ID  int64 `json:"id"`
	Qty int   `json:"qty"`
}

// PlaceOrder is the order submission body.
type PlaceOrder struct {
	Table string `json:"table"`
	Items []Line `json:"items"`
}

// StatusChange is the kitchen status update body.
type StatusChange struct {
	Status string `json:"status" binding:"required"`
}

// Order is the HTTP representation of a stored order.
type Order struct {
	ID          int64  `json:"id"`
	TableNumber string `json:"table_number"`
	Items       []Line `json:"items"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// ToPlaceOrderInput maps the submission body into the command.
func ToPlaceOrderInput(payload PlaceOrder) ports.PlaceOrderInput {
	lines := make([]domain.Line, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, domain.Line{ItemID: item.ID, Qty: item.Qty})
	}
	return ports.PlaceOrderInput{TableNumber: payload.Table, Lines: lines}
}

// FromDomain converts a domain order to its transport shape.
func FromDomain(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]Line, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, Line{ID: line.ItemID, Qty: line.Qty})
	}
	return Order{
		ID:          order.ID,
		TableNumber: order.TableNumber,
		Items:       items,
		Status:      string(order.Status),
		CreatedAt:   FormatTimestamp(order.CreatedAt),
	}
}

func FromDomainList(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomain(order))
	}
	return out
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
