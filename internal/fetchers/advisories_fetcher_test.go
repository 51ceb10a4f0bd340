package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestFetchAdvisoriesParsesRecentItems(t *testing.T) {
	recent := time.Now().Add(-2 * time.Hour).Format(time.RFC1123Z)
	stale := time.Now().Add(-72 * time.Hour).Format(time.RFC1123Z)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Air Quality Advisories</title>
<item><title>Unhealthy air expected downtown</title><link>http://example.com/1</link><pubDate>%s</pubDate></item>
<item><title>Old advisory</title><link>http://example.com/2</link><pubDate>%s</pubDate></item>
</channel></rss>`, recent, stale)
	}))
	defer server.Close()

	fetcher := NewAdvisoriesFetcher(newTestClient(), gofeed.NewParser(), server.URL)

	advisories, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(advisories) != 1 {
		t.Fatalf("expected 1 recent advisory, got %d", len(advisories))
	}
	if advisories[0].Severity != "Moderate" {
		t.Errorf("severity = %q, want Moderate", advisories[0].Severity)
	}
	if advisories[0].Source != "Air Quality Advisories" {
		t.Errorf("source = %q", advisories[0].Source)
	}
	if advisories[0].Link != "http://example.com/1" {
		t.Errorf("link = %q", advisories[0].Link)
	}
}

func TestFetchAdvisoriesFeedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	fetcher := NewAdvisoriesFetcher(newTestClient(), gofeed.NewParser(), server.URL)

	if _, err := fetcher.Fetch(context.Background()); err == nil {
		t.Error("expected error for feed HTTP failure")
	}
}
