package domain

import (
	"github.com/shopspring/decimal"

	ordersdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
)

// Entry is the aggregate for one bucket.
type Entry struct {
	Label   string
	Orders  int
	Items   int
	Revenue decimal.Decimal
}

// Report is the ordered list of buckets for one period kind.
type Report struct {
	Period  Period
	Entries []Entry
}

// Aggregate sums orders into their windows. Every status counts. Revenue uses
// the given prices; lines whose item has no price contribute zero. Revenue is
// rounded to two decimal places.
func Aggregate(windows []Window, orders []*ordersdomain.Order, prices map[int64]decimal.Decimal) []Entry {
	entries := make([]Entry, len(windows))
	for i, w := range windows {
		entries[i] = Entry{Label: w.Label, Revenue: decimal.Zero}
	}
	for _, order := range orders {
		if order == nil {
			continue
		}
		idx := windowIndex(windows, order)
		if idx < 0 {
			continue
		}
		entry := &entries[idx]
		entry.Orders++
		for _, line := range order.Lines {
			entry.Items += line.Qty
			if price, ok := prices[line.ItemID]; ok {
				entry.Revenue = entry.Revenue.Add(price.Mul(decimal.NewFromInt(int64(line.Qty))))
			}
		}
	}
	for i := range entries {
		entries[i].Revenue = entries[i].Revenue.Round(2)
	}
	return entries
}

func windowIndex(windows []Window, order *ordersdomain.Order) int {
	for i, w := range windows {
		if w.Contains(order.CreatedAt) {
			return i
		}
	}
	return -1
}
