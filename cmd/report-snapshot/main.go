package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-gin-restaurant-api/internal/app/api"
	reportsmapper "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/adapters/http/mapper"
	platformobservability "github.com/Apurer/go-gin-restaurant-api/internal/platform/observability"
)

// report-snapshot prints the sales report for REPORT_PERIOD/REPORT_RANGE as JSON on stdout.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	cfg.SeedMenu = false
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	instruments := &platformobservability.Instruments{Logger: logger}

	services, cleanup, err := api.BuildServices(ctx, cfg, instruments)
	if err != nil {
		log.Fatalf("failed to build services: %v", err)
	}
	defer cleanup()

	report, err := services.Reports.Generate(ctx, cfg.ReportPeriod, cfg.ReportRange)
	if err != nil {
		log.Fatalf("failed to generate report: %v", err)
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reportsmapper.FromDomain(report)); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	logger.Info("report snapshot completed", slog.String("period", cfg.ReportPeriod), slog.Int("buckets", len(report.Entries)))
}
