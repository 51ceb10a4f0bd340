package forecast

import (
	"errors"
	"fmt"

	"aqimon/internal/aqi"
	"aqimon/internal/models"
)

// Default projection settings
const (
	DefaultDays       = 7
	DefaultGrowthRate = 0.04
)

// Trend labels for a projected series
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// ErrInvalidDays is returned when a projection horizon of less than one
// day is requested. This indicates a programmer error, not a transient
// failure, so it surfaces immediately instead of producing an empty series.
var ErrInvalidDays = errors.New("projection horizon must be at least 1 day")

// Projector produces deterministic short-term index projections.
// Growth rate and default horizon are fixed at construction.
type Projector struct {
	growthRate float64
	days       int
}

// NewProjector creates a projector with the given growth rate and
// default horizon. Non-positive arguments fall back to the defaults.
func NewProjector(growthRate float64, days int) *Projector {
	if growthRate == 0 {
		growthRate = DefaultGrowthRate
	}
	if days <= 0 {
		days = DefaultDays
	}
	return &Projector{growthRate: growthRate, days: days}
}

// NewDefaultProjector creates a projector with the standard settings
func NewDefaultProjector() *Projector {
	return NewProjector(DefaultGrowthRate, DefaultDays)
}

// GrowthRate returns the configured per-day growth rate
func (p *Projector) GrowthRate() float64 {
	return p.growthRate
}

// Days returns the configured default horizon
func (p *Projector) Days() int {
	return p.days
}

// Project returns the projected index values for the next `days` days.
// Day i's value (1-based) is current * (1 + growthRate*i), clamped into
// the valid AQI range. The compound-growth signal is affine in the day
// number, so evaluating it directly matches fitting a least-squares line
// through the same points within floating-point tolerance.
func (p *Projector) Project(current float64, days int) ([]float64, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidDays, days)
	}

	series := make([]float64, days)
	for i := 1; i <= days; i++ {
		series[i-1] = clamp(current * (1 + p.growthRate*float64(i)))
	}
	return series, nil
}

// ProjectDefault projects over the configured default horizon
func (p *Projector) ProjectDefault(current float64) ([]float64, error) {
	return p.Project(current, p.days)
}

// Summarize projects a series and computes its statistics. Trend is
// "increasing" only when the last value is strictly greater than the
// first; a flat series reads "decreasing".
func (p *Projector) Summarize(current float64, days int) (models.ForecastSummary, error) {
	series, err := p.Project(current, days)
	if err != nil {
		return models.ForecastSummary{}, err
	}

	min, max, sum := series[0], series[0], 0.0
	for _, v := range series {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	trend := TrendDecreasing
	if series[len(series)-1] > series[0] {
		trend = TrendIncreasing
	}

	return models.ForecastSummary{
		Series: series,
		Min:    min,
		Max:    max,
		Avg:    sum / float64(len(series)),
		Trend:  trend,
	}, nil
}

// SummarizeDefault summarizes over the configured default horizon
func (p *Projector) SummarizeDefault(current float64) (models.ForecastSummary, error) {
	return p.Summarize(current, p.days)
}

// clamp bounds a computed projection into the valid AQI range
func clamp(v float64) float64 {
	if v < aqi.MinIndex {
		return aqi.MinIndex
	}
	if v > aqi.MaxIndex {
		return aqi.MaxIndex
	}
	return v
}
