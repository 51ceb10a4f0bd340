package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"aqimon/internal/aqi"
	"aqimon/internal/config"
	"aqimon/internal/logger"
	"aqimon/internal/models"
	"aqimon/internal/server"
)

func main() {
	var (
		cityFlag        = flag.String("city", "", "Report on a single city")
		citiesFlag      = flag.String("cities", "", "Semicolon separated city list (overrides AQIMON_DEFAULT_CITIES)")
		interactiveFlag = flag.Bool("interactive", false, "Prompt for city names on stdin")
		saveFlag        = flag.Bool("save", false, "Persist the generated report files")
		serveFlag       = flag.Bool("serve", false, "Run the HTTP server")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err, nil)
	}

	log := logger.GetGlobalLogger().WithComponent("main")
	log.Info("Starting air quality monitor", logger.Fields{
		"version":     config.GetVersion(),
		"environment": cfg.Environment,
	})

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize", err, nil)
	}
	defer srv.Close()

	switch {
	case *serveFlag:
		if err := srv.ListenAndServe(ctx); err != nil {
			logger.Fatal("HTTP server error", err, nil)
		}

	case *interactiveFlag:
		runInteractive(ctx, srv)

	case *cityFlag != "":
		report := srv.Builder.BuildReport(ctx, *cityFlag)
		printCityReport(report)
		if !report.Succeeded() {
			os.Exit(1)
		}

	default:
		cities := cfg.DefaultCities
		if *citiesFlag != "" {
			cities = splitList(*citiesFlag)
		}
		runBatch(ctx, srv, cities, *saveFlag)
	}
}

// runBatch reports on a list of cities and optionally persists the
// report artifacts
func runBatch(ctx context.Context, srv *server.Server, cities []string, save bool) {
	log := logger.GetGlobalLogger().WithComponent("main")

	if save {
		report, folder, err := srv.Generator.GenerateAndPersist(ctx, cities)
		if err != nil {
			logger.Fatal("Report generation failed", err, nil)
		}
		printAggregateReport(report)
		log.Info("Report saved", logger.Fields{"folder": folder})
		return
	}

	report, _, err := srv.Generator.Generate(ctx, cities)
	if err != nil {
		logger.Fatal("Report generation failed", err, nil)
	}
	printAggregateReport(report)
}

// runInteractive prompts for city names until EOF or "quit"
func runInteractive(ctx context.Context, srv *server.Server) {
	fmt.Println("Air Quality Monitor. Enter a city name, or 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("city> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
			return
		}

		printCityReport(srv.Builder.BuildReport(ctx, line))

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func printCityReport(report models.CityReport) {
	if !report.Succeeded() {
		fmt.Printf("%s: data unavailable (%s)\n", report.City, report.Error)
		return
	}

	fmt.Println(aqi.FormatDisplay(report.CurrentIndex, report.City))
	f := report.Forecast
	fmt.Printf("  %d-day projection: %s, %.1f to %.1f (avg %.1f)\n",
		len(f.Series), f.Trend, f.Min, f.Max, f.Avg)
}

func printAggregateReport(report *models.AggregateReport) {
	for _, city := range report.Cities {
		printCityReport(city)
	}

	s := report.Summary
	fmt.Printf("\nCities: %d ok, %d failed", s.Successes, s.Failures)
	if s.Successes > 0 {
		fmt.Printf(", average AQI %.1f", s.AverageIndex)
	}
	fmt.Println()
	if s.Highest != nil {
		fmt.Printf("Highest: %s (%.0f)\n", s.Highest.City, s.Highest.Index)
	}
	if s.Lowest != nil {
		fmt.Printf("Lowest: %s (%.0f)\n", s.Lowest.City, s.Lowest.Index)
	}

	for _, adv := range report.Advisories {
		fmt.Printf("Advisory [%s]: %s\n", adv.Severity, adv.Description)
	}
}

func splitList(raw string) []string {
	var cities []string
	for _, f := range strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' }) {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			cities = append(cities, trimmed)
		}
	}
	return cities
}
