package reports

import (
	"context"
	"time"

	"aqimon/internal/aqi"
	"aqimon/internal/fetchers"
	"aqimon/internal/forecast"
	"aqimon/internal/logger"
	"aqimon/internal/models"
)

// Builder produces per-city and aggregate AQI reports from an injected
// index fetch capability.
type Builder struct {
	fetcher   fetchers.IndexFetcher
	projector *forecast.Projector
	log       *logger.Logger
}

// NewBuilder creates a report builder. The projector carries the
// configured growth rate and horizon.
func NewBuilder(fetcher fetchers.IndexFetcher, projector *forecast.Projector) *Builder {
	return &Builder{
		fetcher:   fetcher,
		projector: projector,
		log:       logger.GetGlobalLogger().WithComponent("reports"),
	}
}

// BuildReport fetches the current index for one city and combines it
// with classification and projection into a CityReport. Fetch errors are
// converted to a failure-tagged report and never propagate to the caller.
func (b *Builder) BuildReport(ctx context.Context, city string) models.CityReport {
	display := aqi.CanonicalCityName(city)

	current, err := b.fetcher.FetchIndex(ctx, city)
	if err != nil {
		b.log.Warn("fetch failed", logger.Fields{"city": display, "reason": err.Error()})
		return models.CityReport{
			City:   display,
			Status: models.StatusFailure,
			Error:  err.Error(),
		}
	}

	// The projector rejects only horizons < 1, which the constructor
	// already guards against, so a summary error here is unreachable;
	// it still degrades to a failure report rather than panicking.
	summary, err := b.projector.SummarizeDefault(current)
	if err != nil {
		b.log.Error("projection failed", err, logger.Fields{"city": display})
		return models.CityReport{
			City:   display,
			Status: models.StatusFailure,
			Error:  err.Error(),
		}
	}

	return models.CityReport{
		City:         display,
		Status:       models.StatusSuccess,
		CurrentIndex: current,
		Category:     aqi.Classify(current),
		Forecast:     summary,
	}
}

// BuildAggregateReport builds reports for each city in input order and
// computes summary statistics over the successful subset. A failure for
// one city never aborts the rest of the batch.
func (b *Builder) BuildAggregateReport(ctx context.Context, cities []string) models.AggregateReport {
	report := models.AggregateReport{
		Timestamp: time.Now().UTC(),
		Cities:    make([]models.CityReport, 0, len(cities)),
		Summary: models.AggregateSummary{
			TotalCities: len(cities),
		},
	}

	var sum float64
	for _, city := range cities {
		entry := b.BuildReport(ctx, city)
		report.Cities = append(report.Cities, entry)

		if !entry.Succeeded() {
			report.Summary.Failures++
			continue
		}
		report.Summary.Successes++
		sum += entry.CurrentIndex

		// Strict comparisons so the first city reaching an extreme
		// value wins ties
		if report.Summary.Highest == nil || entry.CurrentIndex > report.Summary.Highest.Index {
			report.Summary.Highest = &models.CityIndex{City: entry.City, Index: entry.CurrentIndex}
		}
		if report.Summary.Lowest == nil || entry.CurrentIndex < report.Summary.Lowest.Index {
			report.Summary.Lowest = &models.CityIndex{City: entry.City, Index: entry.CurrentIndex}
		}
	}

	if report.Summary.Successes > 0 {
		report.Summary.AverageIndex = sum / float64(report.Summary.Successes)
	}

	b.log.Info("aggregate report built", logger.Fields{
		"cities":    len(cities),
		"successes": report.Summary.Successes,
		"failures":  report.Summary.Failures,
	})
	return report
}
