package mocks

import (
	"context"
	"fmt"
	"strings"
)

// MockFetcher serves canned AQI values by city name. It implements the
// fetchers.IndexFetcher capability for mockup mode and tests.
type MockFetcher struct {
	Values map[string]float64
	// Calls records the city names requested, in order
	Calls []string
}

// NewMockFetcher creates a mock fetcher with a representative spread of
// values across the severity bands
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Values: map[string]float64{
			"delhi":    287,
			"beijing":  164,
			"new york": 42,
			"london":   58,
			"krakow":   118,
		},
	}
}

// FetchIndex returns the canned value for a city, or an error when the
// city is not in the table (mirroring an unknown-station feed response)
func (m *MockFetcher) FetchIndex(ctx context.Context, city string) (float64, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	m.Calls = append(m.Calls, key)

	if value, ok := m.Values[key]; ok {
		return value, nil
	}
	return 0, fmt.Errorf("failed to fetch AQI for %q: make sure the city name is supported", city)
}
