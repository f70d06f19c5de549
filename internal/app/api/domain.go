package api

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	menucatalog "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/adapters/catalog"
	menumemory "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/adapters/memory"
	menuobs "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/adapters/observability"
	menupostgres "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/adapters/persistence/postgres"
	menuapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/application"
	menuports "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
	ordersevents "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/adapters/events"
	ordersmemory "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
	reportsobs "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/adapters/observability"
	reportsapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/application"
	reportsports "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/ports"
	"github.com/Apurer/go-gin-restaurant-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-restaurant-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-restaurant-api/internal/platform/postgres"
)

// Services holds the instrumented application services shared by the API, the worker and batch jobs.
type Services struct {
	Menu    menuports.Service
	Orders  ordersports.Service
	Reports reportsports.Service
}

// BuildServices wires repositories (Postgres when reachable, memory otherwise),
// seeds the menu when enabled, and wraps every service with observability.
// The returned cleanup releases the database connection and the event publisher.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Services, func(), error) {
	logger := effectiveLogger(instruments)

	db, closeDB := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	menuRepo, orderRepo, err := buildRepositories(db, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	publisher, closePublisher := buildEventPublisher(cfg, logger)
	cleanup := func() {
		closePublisher()
		closeDB()
	}

	menuService := menuobs.New(
		menuapp.NewService(menuRepo),
		menuobs.WithLogger(logger),
		menuobs.WithTracer(instruments.Tracer("internal.menu.application")),
		menuobs.WithMeter(instruments.Meter("internal.menu.application")),
	)
	if cfg.SeedMenu {
		if _, err := menuService.SeedIfEmpty(ctx, menuapp.DefaultSeed()); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	catalog := menucatalog.New(menuRepo)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, catalog, ordersapp.WithEventPublisher(publisher)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	reportService := reportsobs.New(
		reportsapp.NewService(orderRepo, catalog),
		reportsobs.WithLogger(logger),
		reportsobs.WithTracer(instruments.Tracer("internal.reports.application")),
		reportsobs.WithMeter(instruments.Meter("internal.reports.application")),
	)

	return &Services{Menu: menuService, Orders: orderService, Reports: reportService}, cleanup, nil
}

type orderStore interface {
	ordersports.Repository
	reportsports.OrderReader
}

func buildRepositories(db *gorm.DB, logger *slog.Logger) (menuports.Repository, orderStore, error) {
	if db == nil {
		return menumemory.NewRepository(), ordersmemory.NewRepository(), nil
	}
	if err := migrations.Run(db); err != nil {
		return nil, nil, err
	}
	logger.Info("menu and order repositories configured with postgres")
	return menupostgres.NewRepository(db), orderspostgres.NewRepository(db), nil
}

func buildEventPublisher(cfg Config, logger *slog.Logger) (ordersports.EventPublisher, func()) {
	if cfg.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL not set, kitchen events are logged only")
		return ordersevents.NewLogPublisher(logger), func() {}
	}
	publisher, cleanup, err := ordersevents.Dial(cfg.RabbitMQURL,
		ordersevents.WithExchange(cfg.KitchenExchange),
		ordersevents.WithLogger(logger),
	)
	if err != nil {
		logger.Warn("failed to connect to rabbitmq, kitchen events are logged only", slog.String("error", err.Error()))
		return ordersevents.NewLogPublisher(logger), func() {}
	}
	logger.Info("kitchen events published to rabbitmq", slog.String("exchange", cfg.KitchenExchange))
	return publisher, cleanup
}
