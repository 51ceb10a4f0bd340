package fetchers

import (
	"context"
	"time"

	"aqimon/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// IndexFetcher is the capability the report builder consumes: it turns a
// city name into a current index value, or an error describing why no
// value could be produced.
type IndexFetcher interface {
	FetchIndex(ctx context.Context, city string) (float64, error)
}

// DataFetcher bundles the external data sources: the WAQI city feed and
// an optional air quality advisories RSS feed.
type DataFetcher struct {
	client     *resty.Client
	waqi       *WAQIFetcher
	advisories *AdvisoriesFetcher
}

// NewDataFetcher creates a data fetcher with a shared HTTP client
func NewDataFetcher(token, baseURL, advisoriesURL string) *DataFetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	return &DataFetcher{
		client:     client,
		waqi:       NewWAQIFetcher(client, token, baseURL),
		advisories: NewAdvisoriesFetcher(client, gofeed.NewParser(), advisoriesURL),
	}
}

// FetchIndex fetches the current AQI for a city from the WAQI feed
func (f *DataFetcher) FetchIndex(ctx context.Context, city string) (float64, error) {
	return f.waqi.FetchIndex(ctx, city)
}

// FetchAdvisories fetches recent advisories from the configured feed.
// Returns an empty slice when no feed is configured.
func (f *DataFetcher) FetchAdvisories(ctx context.Context) ([]models.Advisory, error) {
	return f.advisories.Fetch(ctx)
}
