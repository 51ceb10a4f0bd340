package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"aqimon/internal/config"
	"aqimon/internal/forecast"
	"aqimon/internal/logger"
	"aqimon/internal/mocks"
	"aqimon/internal/reports"
	"aqimon/internal/storage"
)

// Local smoke runner: generates a full report from canned AQI values
// without touching the network or GCS. Useful for template and chart
// work.
func main() {
	log := logger.GetGlobalLogger().WithComponent("local-runner")
	started := time.Now()

	cfg := &config.Config{
		LocalReportsDir: "reports",
		ForecastDays:    forecast.DefaultDays,
		GrowthRate:      forecast.DefaultGrowthRate,
	}

	ctx := context.Background()
	store, err := storage.NewStorageClient(ctx, storage.DeploymentLocal, cfg)
	if err != nil {
		log.Fatal("Failed to initialize local storage", err, nil)
	}
	defer store.Close()

	builder := reports.NewBuilder(mocks.NewMockFetcher(), forecast.NewDefaultProjector())
	generator := reports.NewGenerator(builder, store, nil, nil)

	cities := []string{"Delhi", "Beijing", "New York", "London", "Krakow", "Nowhere"}
	report, folder, err := generator.GenerateAndPersist(ctx, cities)
	if err != nil {
		log.Fatal("Report generation failed", err, nil)
	}

	fmt.Printf("Report written to %s/%s\n", cfg.LocalReportsDir, folder)
	fmt.Printf("Cities: %d ok, %d failed, average AQI %.1f\n",
		report.Summary.Successes, report.Summary.Failures, report.Summary.AverageIndex)
	fmt.Printf("Done in %s\n", time.Since(started).Round(time.Millisecond))

	if report.Summary.Successes == 0 {
		os.Exit(1)
	}
}
