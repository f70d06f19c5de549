package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	ordersdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/domain"
)

// OrderReader reads stored orders for aggregation (outbound/driven port).
type OrderReader interface {
	// ListCreatedBetween returns orders created in [from, to).
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*ordersdomain.Order, error)
}

// PriceBook resolves the current price of menu items. Unknown ids are absent.
type PriceBook interface {
	Prices(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error)
}

// Service defines the reporting use cases (inbound/driving port).
type Service interface {
	// Generate aggregates the last n buckets of the named period.
	Generate(ctx context.Context, period string, n int) (*domain.Report, error)
}
