package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.PlaceOrder",
		trace.WithAttributes(attribute.String("order.table", input.TableNumber), attribute.Int("order.lines", len(input.Lines))))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("order.table", input.TableNumber), slog.Int("order.lines", len(input.Lines)))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, err)
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("order.table", input.TableNumber))
	}
	s.metrics.recordPlaced(ctx)
	span.SetAttributes(attribute.Int64("order.id", result.ID))
	s.logInfo(ctx, "order placed", slog.Int64("order.id", result.ID), slog.Int("order.qty", result.TotalQty()))
	return result, nil
}

func (s *Service) Validate(ctx context.Context, input ordersports.PlaceOrderInput) error {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Validate", trace.WithAttributes(attribute.Int("order.lines", len(input.Lines))))
	defer span.End()

	if err := s.inner.Validate(ctx, input); err != nil {
		s.metrics.recordRejected(ctx, err)
		return s.handleError(ctx, span, err, "order failed validation", slog.String("order.table", input.TableNumber))
	}
	return nil
}

func (s *Service) Persist(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Persist", trace.WithAttributes(attribute.Int("order.lines", len(input.Lines))))
	defer span.End()

	result, err := s.inner.Persist(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to persist order", slog.String("order.table", input.TableNumber))
	}
	s.metrics.recordPlaced(ctx)
	span.SetAttributes(attribute.Int64("order.id", result.ID))
	s.logInfo(ctx, "order persisted", slog.Int64("order.id", result.ID))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status ordersdomain.Status) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateStatus",
		trace.WithAttributes(attribute.Int64("order.id", id), attribute.String("order.status", string(status))))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.Int64("order.id", id), slog.String("status", string(status)))
	result, err := s.inner.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.Int64("order.id", id))
	}
	s.metrics.recordStatus(ctx, result.Status)
	return result, nil
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
	ordersPlaced   metric.Int64Counter
	ordersRejected metric.Int64Counter
	statusChanges  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	ordersRejected, _ := m.Int64Counter("orders.service.orders_rejected", metric.WithDescription("Number of orders rejected by validation"))
	statusChanges, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Number of order status changes"))
	return serviceMetrics{ordersPlaced: ordersPlaced, ordersRejected: ordersRejected, statusChanges: statusChanges}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
}

// recordRejected counts only validation failures, not store errors.
func (m serviceMetrics) recordRejected(ctx context.Context, err error) {
	var validationErr *ordersdomain.ValidationError
	if m.ordersRejected == nil {
		return
	}
	switch {
	case errors.As(err, &validationErr):
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "validation")))
	case errors.Is(err, ordersdomain.ErrEmptyOrder):
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "empty")))
	}
}

func (m serviceMetrics) recordStatus(ctx context.Context, status ordersdomain.Status) {
	if m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ordersports.Service = (*Service)(nil)
