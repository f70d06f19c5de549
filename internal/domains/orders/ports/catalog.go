package ports

import (
	"context"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
)

// Catalog resolves menu state for the items an order references.
// Unknown ids are simply absent from the result.
type Catalog interface {
	Lookup(ctx context.Context, ids []int64) (map[int64]domain.CatalogEntry, error)
}
