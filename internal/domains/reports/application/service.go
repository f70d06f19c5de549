package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	ordersdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/ports"
)

// Service builds sales reports from stored orders and current menu prices.
type Service struct {
	orders ports.OrderReader
	prices ports.PriceBook
	now    func() time.Time
}

// Option customizes the service.
type Option func(*Service)

// WithClock overrides the time source that anchors the newest bucket.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(orders ports.OrderReader, prices ports.PriceBook, opts ...Option) *Service {
	s := &Service{orders: orders, prices: prices, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Generate validates the period before touching the store, then reads every
// order in the covered range once and buckets it.
func (s *Service) Generate(ctx context.Context, period string, n int) (*domain.Report, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, mapError(err)
	}
	windows, err := domain.Windows(p, n, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	from, to := windows[0].Start, windows[len(windows)-1].End
	orders, err := s.orders.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	prices := map[int64]decimal.Decimal{}
	if ids := itemIDs(orders); len(ids) > 0 {
		prices, err = s.prices.Prices(ctx, ids)
		if err != nil {
			return nil, err
		}
	}
	return &domain.Report{Period: p, Entries: domain.Aggregate(windows, orders, prices)}, nil
}

func itemIDs(orders []*ordersdomain.Order) []int64 {
	var lines []ordersdomain.Line
	for _, order := range orders {
		if order != nil {
			lines = append(lines, order.Lines...)
		}
	}
	return ordersdomain.ItemIDs(lines)
}

var _ ports.Service = (*Service)(nil)
