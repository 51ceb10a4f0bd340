package models

import "time"

// ReportStatus tags a per-city result as success or failure
type ReportStatus string

const (
	StatusSuccess ReportStatus = "success"
	StatusFailure ReportStatus = "failure"
)

// Category represents an AQI severity band with its display color
type Category struct {
	Label string `json:"label"` // Good/Moderate/.../Hazardous/Unknown
	Color string `json:"color"` // Hex color token for rendering
}

// ForecastSummary contains the projected series and its statistics
type ForecastSummary struct {
	Series []float64 `json:"series"` // Index 0 = day 1's projection
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Avg    float64   `json:"avg"`
	Trend  string    `json:"trend"` // "increasing" or "decreasing"
}

// CityReport represents the per-city outcome of a fetch + analysis pass
type CityReport struct {
	City         string          `json:"city"` // Canonical display form
	Status       ReportStatus    `json:"status"`
	CurrentIndex float64         `json:"current_index"` // Valid only on success
	Category     Category        `json:"category"`
	Forecast     ForecastSummary `json:"forecast"`
	Error        string          `json:"error,omitempty"` // Set only on failure
}

// Succeeded reports whether the fetch and analysis completed for this city
func (r CityReport) Succeeded() bool {
	return r.Status == StatusSuccess
}

// CityIndex pairs a city with its current index value, used for extremes
type CityIndex struct {
	City  string  `json:"city"`
	Index float64 `json:"index"`
}

// AggregateSummary holds cross-city statistics over the successful subset
type AggregateSummary struct {
	TotalCities  int        `json:"total_cities"`
	Successes    int        `json:"successes"`
	Failures     int        `json:"failures"`
	AverageIndex float64    `json:"average_index"` // 0 when no city succeeded
	Highest      *CityIndex `json:"highest,omitempty"`
	Lowest       *CityIndex `json:"lowest,omitempty"`
}

// AggregateReport is the batch result across multiple cities.
// Cities preserves the order the cities were requested in.
type AggregateReport struct {
	Timestamp  time.Time        `json:"timestamp"`
	Cities     []CityReport     `json:"cities"`
	Summary    AggregateSummary `json:"summary"`
	Advisories []Advisory       `json:"advisories,omitempty"`
}

// ReportFor returns the entry for the given city display name, if present
func (a *AggregateReport) ReportFor(city string) (CityReport, bool) {
	for _, r := range a.Cities {
		if r.City == city {
			return r, true
		}
	}
	return CityReport{}, false
}

// Advisory represents a notable item from an air quality advisory feed
type Advisory struct {
	Source      string    `json:"source"`
	Severity    string    `json:"severity"` // Low/Moderate/High/Extreme
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Link        string    `json:"link,omitempty"`
}
