package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"

	ordersevents "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/adapters/events"
	reportsdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/domain"
)

// Config carries environment-driven settings for the API, worker and report jobs.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	RabbitMQURL       string
	KitchenExchange   string
	SeedMenu          bool
	ReportPeriod      string
	ReportRange       int
}

// LoadConfig reads .env when present, then the environment, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("TEMPORAL_ADDRESS", client.DefaultHostPort)
	v.SetDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	v.SetDefault("TEMPORAL_DISABLED", false)
	v.SetDefault("KITCHEN_EXCHANGE", ordersevents.DefaultExchange)
	v.SetDefault("SEED_MENU", true)
	v.SetDefault("REPORT_PERIOD", string(reportsdomain.PeriodDay))
	v.SetDefault("REPORT_RANGE", 0)

	cfg := Config{
		Port:              strings.TrimSpace(v.GetString("PORT")),
		PostgresDSN:       strings.TrimSpace(v.GetString("POSTGRES_DSN")),
		TemporalAddress:   strings.TrimSpace(v.GetString("TEMPORAL_ADDRESS")),
		TemporalNamespace: strings.TrimSpace(v.GetString("TEMPORAL_NAMESPACE")),
		TemporalDisabled:  isTruthy(v.GetString("TEMPORAL_DISABLED")),
		RabbitMQURL:       strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		KitchenExchange:   strings.TrimSpace(v.GetString("KITCHEN_EXCHANGE")),
		SeedMenu:          !isFalsy(v.GetString("SEED_MENU")),
		ReportPeriod:      strings.TrimSpace(v.GetString("REPORT_PERIOD")),
	}
	if cfg.Port == "" {
		return Config{}, errors.New("PORT must not be empty")
	}
	if _, err := reportsdomain.ParsePeriod(cfg.ReportPeriod); err != nil {
		return Config{}, fmt.Errorf("REPORT_PERIOD must be day, week or month: %w", err)
	}
	reportRange, err := parseNonNegative(v.GetString("REPORT_RANGE"))
	if err == nil && reportRange > reportsdomain.MaxRange {
		err = reportsdomain.ErrRangeTooLarge
	}
	if err != nil {
		return Config{}, fmt.Errorf("REPORT_RANGE must be a non-negative integer: %w", err)
	}
	cfg.ReportRange = reportRange
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func parseNonNegative(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("negative integer")
	}
	return n, nil
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func isFalsy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "0" || value == "false" || value == "no"
}
