package fetchers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aqimon/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// AdvisoryWindow is how far back feed items are considered current
const AdvisoryWindow = 24 * time.Hour

// AdvisoriesFetcher pulls air quality advisories from an RSS/Atom feed
type AdvisoriesFetcher struct {
	client  *resty.Client
	parser  *gofeed.Parser
	feedURL string
}

// NewAdvisoriesFetcher creates an advisories fetcher. An empty feed URL
// disables the source.
func NewAdvisoriesFetcher(client *resty.Client, parser *gofeed.Parser, feedURL string) *AdvisoriesFetcher {
	return &AdvisoriesFetcher{
		client:  client,
		parser:  parser,
		feedURL: feedURL,
	}
}

// Fetch retrieves recent advisories from the feed
func (f *AdvisoriesFetcher) Fetch(ctx context.Context) ([]models.Advisory, error) {
	if f.feedURL == "" {
		return nil, nil
	}

	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.feedURL)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch advisories feed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("advisories feed returned status %d", resp.StatusCode())
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse advisories feed: %w", err)
	}

	now := time.Now()
	var advisories []models.Advisory
	for _, item := range feed.Items {
		if item.PublishedParsed == nil || !item.PublishedParsed.After(now.Add(-AdvisoryWindow)) {
			continue
		}
		advisories = append(advisories, models.Advisory{
			Source:      feed.Title,
			Severity:    classifyAdvisorySeverity(item.Title),
			Description: item.Title,
			Timestamp:   *item.PublishedParsed,
			Link:        item.Link,
		})
	}

	return advisories, nil
}

// classifyAdvisorySeverity maps advisory title keywords to a severity tag
func classifyAdvisorySeverity(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "hazardous") || strings.Contains(t, "emergency"):
		return "Extreme"
	case strings.Contains(t, "very unhealthy") || strings.Contains(t, "warning"):
		return "High"
	case strings.Contains(t, "unhealthy") || strings.Contains(t, "action day") || strings.Contains(t, "alert"):
		return "Moderate"
	default:
		return "Low"
	}
}
