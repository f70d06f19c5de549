package ports

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
)

// EventKind names what happened to an order.
type EventKind string

const (
	EventOrderPlaced   EventKind = "order.placed"
	EventStatusChanged EventKind = "order.status"
)

// Event is a kitchen notification about an order.
type Event struct {
	ID         string
	Kind       EventKind
	OccurredAt time.Time
	Order      *domain.Order
}

// EventPublisher delivers order events to the kitchen (outbound/driven port).
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
