package ports

import (
	"context"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs order placement, durably or inline.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
}
