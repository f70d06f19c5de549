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

	reportsdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/domain"
	reportsports "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/ports"
)

const tracerName = "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/adapters/observability/service"

// Service decorates the reports service with tracing, logging, and metrics.
type Service struct {
	inner   reportsports.Service
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

// New wraps the core reports service.
func New(inner reportsports.Service, opts ...Option) reportsports.Service {
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

func (s *Service) Generate(ctx context.Context, period string, n int) (*reportsdomain.Report, error) {
	ctx, span := s.tracer.Start(ctx, "ReportsService.Generate",
		trace.WithAttributes(attribute.String("report.period", period), attribute.Int("report.range", n)))
	defer span.End()

	result, err := s.inner.Generate(ctx, period, n)
	if err != nil {
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to generate report",
				slog.String("period", period), slog.Int("range", n), slog.String("error", err.Error()))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.metrics.record(ctx, result)
	span.SetAttributes(attribute.Int("report.buckets", len(result.Entries)))
	return result, nil
}

type serviceMetrics struct {
	generated   metric.Int64Counter
	bucketCount metric.Int64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	generated, _ := m.Int64Counter("reports.service.reports_generated", metric.WithDescription("Number of sales reports generated"))
	bucketCount, _ := m.Int64Histogram("reports.service.bucket_count", metric.WithDescription("Buckets per generated report"))
	return serviceMetrics{generated: generated, bucketCount: bucketCount}
}

func (m serviceMetrics) record(ctx context.Context, report *reportsdomain.Report) {
	attrs := metric.WithAttributes(attribute.String("report.period", string(report.Period)))
	if m.generated != nil {
		m.generated.Add(ctx, 1, attrs)
	}
	if m.bucketCount != nil {
		m.bucketCount.Record(ctx, int64(len(report.Entries)), attrs)
	}
}

var _ reportsports.Service = (*Service)(nil)
