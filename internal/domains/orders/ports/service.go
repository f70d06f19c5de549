package ports

import (
	"context"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
)

// PlaceOrderInput is the order submission command.
type PlaceOrderInput struct {
	TableNumber string
	Lines       []domain.Line
}

// Service defines the order use cases exposed to adapters (inbound/driving port).
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	// Validate checks the submission against the menu without persisting anything.
	Validate(ctx context.Context, input PlaceOrderInput) error
	// Persist stores an already validated submission as a pending order.
	Persist(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error)
}
