package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	menudomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/domain"
	menuports "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
)

const tracerName = "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/adapters/observability/service"

// Service decorates the menu service with tracing, logging, and metrics.
type Service struct {
	inner   menuports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core menu service.
func New(inner menuports.Service, opts ...Option) menuports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]*menudomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list menu")
	}
	span.SetAttributes(attribute.Int("menu.items.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*menudomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.GetByID", trace.WithAttributes(attribute.Int64("menu.item.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load menu item", slog.Int64("menu.item.id", id))
	}
	return result, nil
}

func (s *Service) Upsert(ctx context.Context, input menuports.UpsertInput) (*menuports.UpsertResult, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.Upsert", trace.WithAttributes(attribute.String("menu.item.name", input.Name)))
	defer span.End()

	s.logInfo(ctx, "upserting menu item", slog.String("menu.item.name", input.Name))
	result, err := s.inner.Upsert(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to upsert menu item", slog.String("menu.item.name", input.Name))
	}
	switch {
	case result.Created:
		s.metrics.recordCreated(ctx)
		s.logInfo(ctx, "menu item created", slog.Int64("menu.item.id", result.Item.ID))
	case result.Updated:
		s.metrics.recordUpdated(ctx, "upsert")
		s.logInfo(ctx, "menu item updated", slog.Int64("menu.item.id", result.Item.ID))
	}
	span.SetAttributes(attribute.Int64("menu.item.id", result.Item.ID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch menudomain.Patch) (*menudomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.Update", trace.WithAttributes(attribute.Int64("menu.item.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating menu item", slog.Int64("menu.item.id", id))
	result, err := s.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update menu item", slog.Int64("menu.item.id", id))
	}
	s.metrics.recordUpdated(ctx, "update")
	return result, nil
}

func (s *Service) SetAvailability(ctx context.Context, id int64, available bool) (*menudomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.SetAvailability",
		trace.WithAttributes(attribute.Int64("menu.item.id", id), attribute.Bool("menu.item.available", available)))
	defer span.End()

	s.logInfo(ctx, "setting availability", slog.Int64("menu.item.id", id), slog.Bool("available", available))
	result, err := s.inner.SetAvailability(ctx, id, available)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set availability", slog.Int64("menu.item.id", id))
	}
	s.metrics.recordUpdated(ctx, "availability")
	return result, nil
}

func (s *Service) SeedIfEmpty(ctx context.Context, items []menuports.SeedItem) (int, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.SeedIfEmpty")
	defer span.End()

	seeded, err := s.inner.SeedIfEmpty(ctx, items)
	if err != nil {
		return seeded, s.handleError(ctx, span, err, "failed to seed menu", slog.Int("seeded", seeded))
	}
	if seeded > 0 {
		s.metrics.recordSeeded(ctx, seeded)
		s.logInfo(ctx, "menu seeded", slog.Int("seeded", seeded))
	}
	return seeded, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	itemsCreated metric.Int64Counter
	itemsUpdated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsCreated, _ := m.Int64Counter("menu.service.items_created", metric.WithDescription("Number of menu items created"))
	itemsUpdated, _ := m.Int64Counter("menu.service.items_updated", metric.WithDescription("Number of menu item updates"))
	return serviceMetrics{itemsCreated: itemsCreated, itemsUpdated: itemsUpdated}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.itemsCreated != nil {
		m.itemsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("source", "api")))
	}
}

func (m serviceMetrics) recordSeeded(ctx context.Context, n int) {
	if m.itemsCreated != nil {
		m.itemsCreated.Add(ctx, int64(n), metric.WithAttributes(attribute.String("source", "seed")))
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context, op string) {
	if m.itemsUpdated != nil {
		m.itemsUpdated.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ menuports.Service = (*Service)(nil)
