package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"aqimon/internal/models"

	"github.com/go-resty/resty/v2"
)

// DefaultWAQIBaseURL is the standard WAQI city feed endpoint
const DefaultWAQIBaseURL = "https://api.waqi.info/feed/"

// WAQIFetcher fetches current AQI readings from the WAQI city feed
type WAQIFetcher struct {
	client  *resty.Client
	token   string
	baseURL string
}

// NewWAQIFetcher creates a WAQI fetcher using the given HTTP client
func NewWAQIFetcher(client *resty.Client, token, baseURL string) *WAQIFetcher {
	if baseURL == "" {
		baseURL = DefaultWAQIBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &WAQIFetcher{
		client:  client,
		token:   token,
		baseURL: baseURL,
	}
}

// FetchIndex fetches the current AQI for a city. Any transport problem,
// non-ok feed status, or malformed payload is reported as an error for
// the caller to contain.
func (f *WAQIFetcher) FetchIndex(ctx context.Context, city string) (float64, error) {
	feedURL := f.baseURL + url.PathEscape(strings.ToLower(strings.TrimSpace(city))) + "/"

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("token", f.token).
		Get(feedURL)

	if err != nil {
		return 0, fmt.Errorf("network error while fetching AQI for %q: %w", city, err)
	}

	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("WAQI API returned status %d for %q", resp.StatusCode(), city)
	}

	var feed models.WAQIResponse
	if err := json.Unmarshal(resp.Body(), &feed); err != nil {
		return 0, fmt.Errorf("failed to parse WAQI response for %q: %w", city, err)
	}

	if feed.Status != "ok" {
		return 0, fmt.Errorf("failed to fetch AQI for %q: make sure the city name is supported", city)
	}

	var data models.WAQICityData
	if err := json.Unmarshal(feed.Data, &data); err != nil {
		return 0, fmt.Errorf("unexpected WAQI response format for %q: %w", city, err)
	}

	// Stations occasionally report "-" while offline
	if !data.AQI.Valid {
		return 0, fmt.Errorf("station for %q has no current AQI reading", city)
	}

	return data.AQI.Value, nil
}
