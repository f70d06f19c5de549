package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	restaurantserver "github.com/Apurer/go-gin-restaurant-api/go"
	ordersworkflows "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-restaurant-api/internal/platform/observability"
)

// Run boots the restaurant HTTP API with observability, repositories, events, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "restaurant-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup, err := BuildServices(ctx, cfg, instruments)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}
	defer cleanup()

	inline := ordersworkflows.NewInlineOrderWorkflows(services.Orders)
	var orderWorkflows ordersports.WorkflowOrchestrator = inline
	if temporalClient, err := ConnectTemporal(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient, ordersworkflows.WithFallback(inline))
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := restaurantserver.ApiHandleFunctions{
		MenuAPI:   restaurantserver.NewMenuAPI(services.Menu),
		OrderAPI:  restaurantserver.NewOrderAPI(services.Orders, orderWorkflows),
		ReportAPI: restaurantserver.NewReportAPI(services.Reports),
		PageAPI:   restaurantserver.NewPageAPI(services.Menu),
	}

	router := restaurantserver.NewRouter(handlers, otelgin.Middleware(serviceName))
	addr := cfg.Addr()
	logger.Info("restaurant API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("restaurant API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// ConnectTemporal dials Temporal with tracing and structured logging, unless disabled by config.
func ConnectTemporal(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
