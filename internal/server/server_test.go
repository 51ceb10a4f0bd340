package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aqimon/internal/config"
	"aqimon/internal/forecast"
	"aqimon/internal/logger"
	"aqimon/internal/mocks"
	"aqimon/internal/reports"
	"aqimon/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store, err := storage.NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	builder := reports.NewBuilder(mocks.NewMockFetcher(), forecast.NewDefaultProjector())
	return &Server{
		Config: &config.Config{
			Port:          "8980",
			DefaultCities: []string{"Delhi", "London"},
			ForecastDays:  7,
			GrowthRate:    0.04,
		},
		Builder:   builder,
		Generator: reports.NewGenerator(builder, store, nil, nil),
		Storage:   store,
		log:       logger.NewDefault().WithComponent("server"),
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.SetupRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}

	var health map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("health response not JSON: %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("health status field = %v, want healthy", health["status"])
	}
}

func TestHandleCity(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.SetupRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/city?name=delhi")
	if err != nil {
		t.Fatalf("city request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("city status = %d, want 200", resp.StatusCode)
	}

	var report struct {
		City         string  `json:"city"`
		CurrentIndex float64 `json:"current_index"`
		Category     struct {
			Label string `json:"label"`
		} `json:"category"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("city response not JSON: %v", err)
	}
	if report.City != "Delhi" {
		t.Errorf("city = %q, want Delhi", report.City)
	}
	if report.CurrentIndex != 287 {
		t.Errorf("current index = %v, want 287", report.CurrentIndex)
	}
	if report.Category.Label != "Very Unhealthy" {
		t.Errorf("category = %q, want Very Unhealthy", report.Category.Label)
	}
}

func TestHandleCityMissingName(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.SetupRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/city")
	if err != nil {
		t.Fatalf("city request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without name", resp.StatusCode)
	}
}

func TestHandleCityUnknown(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.SetupRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/city?name=atlantis")
	if err != nil {
		t.Fatalf("city request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 for unknown city", resp.StatusCode)
	}

	var report struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("error response not JSON: %v", err)
	}
	if report.Status != "failure" {
		t.Errorf("status field = %q, want failure", report.Status)
	}
}

func TestHandleGenerateAndRetrieve(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.SetupRoutes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/generate", "application/json", nil)
	if err != nil {
		t.Fatalf("generate request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate status = %d, want 200", resp.StatusCode)
	}

	var result struct {
		Status string `json:"status"`
		Report string `json:"report"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("generate response not JSON: %v", err)
	}
	if result.Status != "ok" {
		t.Errorf("generate status field = %q, want ok", result.Status)
	}
	if !strings.HasPrefix(result.Report, "/reports/") || !strings.HasSuffix(result.Report, "/index.html") {
		t.Fatalf("unexpected report URL %q", result.Report)
	}

	// The stored report should be served through the file proxy
	fileResp, err := http.Get(ts.URL + result.Report)
	if err != nil {
		t.Fatalf("file proxy request failed: %v", err)
	}
	defer fileResp.Body.Close()

	if fileResp.StatusCode != http.StatusOK {
		t.Errorf("file proxy status = %d, want 200", fileResp.StatusCode)
	}
	if ct := fileResp.Header.Get("Content-Type"); ct != "text/html" {
		t.Errorf("file proxy content type = %q, want text/html", ct)
	}
}

func TestHandleGenerateWrongMethod(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.SetupRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/generate")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405 for GET /generate", resp.StatusCode)
	}
}

func TestHandleRootRedirectsToLatest(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.SetupRoutes())
	defer ts.Close()

	// Before any report exists the root serves the landing page
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("root request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("root status = %d, want 200 landing page", resp.StatusCode)
	}

	// Generate a report, then the root should redirect to it
	genResp, err := http.Post(ts.URL+"/generate", "application/json", nil)
	if err != nil {
		t.Fatalf("generate request failed: %v", err)
	}
	genResp.Body.Close()

	resp, err = client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("root request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("root status = %d, want 302 after report exists", resp.StatusCode)
	}
	location := resp.Header.Get("Location")
	if !strings.HasPrefix(location, "/reports/") || !strings.HasSuffix(location, "/index.html") {
		t.Errorf("unexpected redirect location %q", location)
	}
}

func TestHandleListReports(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.SetupRoutes())
	defer ts.Close()

	genResp, err := http.Post(ts.URL+"/generate", "application/json", nil)
	if err != nil {
		t.Fatalf("generate request failed: %v", err)
	}
	genResp.Body.Close()

	resp, err := http.Get(ts.URL + "/reports")
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	defer resp.Body.Close()

	var listing struct {
		Reports []string `json:"reports"`
		Count   int      `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("list response not JSON: %v", err)
	}
	if listing.Count != 1 || len(listing.Reports) != 1 {
		t.Errorf("expected exactly one report, got count=%d reports=%v", listing.Count, listing.Reports)
	}
}

func TestHandleFileProxyTraversal(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.SetupRoutes())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/reports/"+strings.ReplaceAll("../../etc/passwd", "/", "%2F"), nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		t.Error("directory traversal should not succeed")
	}
}

func TestSplitCities(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"Delhi;Beijing", []string{"Delhi", "Beijing"}},
		{"Delhi, Beijing , London", []string{"Delhi", "Beijing", "London"}},
		{" ; ,", nil},
	}

	for _, tt := range tests {
		got := splitCities(tt.raw)
		if len(got) != len(tt.want) {
			t.Errorf("splitCities(%q) = %v, want %v", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitCities(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
			}
		}
	}
}
