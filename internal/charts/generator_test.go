package charts

import (
	"os"
	"strings"
	"testing"
	"time"

	"aqimon/internal/models"
)

func sampleReport() *models.AggregateReport {
	return &models.AggregateReport{
		Timestamp: time.Now(),
		Cities: []models.CityReport{
			{
				City:         "Delhi",
				Status:       models.StatusSuccess,
				CurrentIndex: 287,
				Category:     models.Category{Label: "Very Unhealthy", Color: "#8f3f97"},
				Forecast: models.ForecastSummary{
					Series: []float64{298.48, 309.96, 321.44, 332.92, 344.4, 355.88, 367.36},
					Min:    298.48,
					Max:    367.36,
					Avg:    332.92,
					Trend:  "increasing",
				},
			},
			{
				City:         "London",
				Status:       models.StatusSuccess,
				CurrentIndex: 58,
				Category:     models.Category{Label: "Moderate", Color: "#ffff00"},
				Forecast: models.ForecastSummary{
					Series: []float64{60.32, 62.64, 64.96, 67.28, 69.6, 71.92, 74.24},
					Min:    60.32,
					Max:    74.24,
					Avg:    67.28,
					Trend:  "increasing",
				},
			},
			{
				City:   "Atlantis",
				Status: models.StatusFailure,
				Error:  "city not found",
			},
		},
		Summary: models.AggregateSummary{
			TotalCities: 3,
			Successes:   2,
			Failures:    1,
		},
	}
}

func TestGenerateCharts(t *testing.T) {
	dir := t.TempDir()
	cg := NewChartGenerator(dir)

	files, err := cg.GenerateCharts(sampleReport())
	if err != nil {
		t.Fatalf("GenerateCharts failed: %v", err)
	}

	// Two trend charts plus the comparison chart
	if len(files) != 3 {
		t.Fatalf("Expected 3 chart files, got %d: %v", len(files), files)
	}

	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			t.Errorf("Chart file %s not written: %v", file, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("Chart file %s is empty", file)
		}
	}

	foundComparison := false
	for _, file := range files {
		if strings.HasSuffix(file, "comparison.png") {
			foundComparison = true
		}
	}
	if !foundComparison {
		t.Error("Expected comparison.png among generated charts")
	}
}

func TestGenerateChartsSkipsFailedCities(t *testing.T) {
	dir := t.TempDir()
	cg := NewChartGenerator(dir)

	files, err := cg.GenerateCharts(sampleReport())
	if err != nil {
		t.Fatalf("GenerateCharts failed: %v", err)
	}

	for _, file := range files {
		if strings.Contains(file, "atlantis") {
			t.Errorf("Failed city should not get a trend chart, got %s", file)
		}
	}
}

func TestGenerateSnippets(t *testing.T) {
	cg := NewChartGenerator(t.TempDir())

	snippets, err := cg.GenerateSnippets(sampleReport())
	if err != nil {
		t.Fatalf("GenerateSnippets failed: %v", err)
	}

	// Gauge for the lead city, the heatmap, and the forecast lines
	if len(snippets) != 3 {
		t.Fatalf("Expected 3 snippets, got %d", len(snippets))
	}

	ids := make(map[string]bool)
	for _, snippet := range snippets {
		ids[snippet.ID] = true
		if snippet.HTML == "" {
			t.Errorf("Snippet %s has empty HTML", snippet.ID)
		}
	}

	for _, want := range []string{"chart-aqi-gauge", "chart-prediction-heatmap", "chart-forecast-lines"} {
		if !ids[want] {
			t.Errorf("Missing snippet %s", want)
		}
	}
}

func TestGaugeSnippetContent(t *testing.T) {
	cg := NewChartGenerator(t.TempDir())
	report := sampleReport()

	snippet, err := cg.generateGaugeSnippet(report.Cities[0])
	if err != nil {
		t.Fatalf("generateGaugeSnippet failed: %v", err)
	}

	if !strings.Contains(snippet.HTML, "Delhi") {
		t.Error("Gauge snippet should name the city")
	}
	if !strings.Contains(snippet.Script, "gauge") {
		t.Error("Gauge snippet script should configure a gauge series")
	}
	if !strings.Contains(snippet.Script, "Very Unhealthy") {
		t.Error("Gauge detail should show the severity label")
	}
}

func TestHeatmapSnippetContent(t *testing.T) {
	cg := NewChartGenerator(t.TempDir())

	snippet, err := cg.generateHeatmapSnippet(sampleReport())
	if err != nil {
		t.Fatalf("generateHeatmapSnippet failed: %v", err)
	}

	for _, city := range []string{"Delhi", "London"} {
		if !strings.Contains(snippet.Script, city) {
			t.Errorf("Heatmap should include %s", city)
		}
	}
	if strings.Contains(snippet.Script, "Atlantis") {
		t.Error("Heatmap should exclude failed cities")
	}
	if !strings.Contains(snippet.Script, "Day 7") {
		t.Error("Heatmap columns should cover the full projection window")
	}
}

func TestForecastLinesContent(t *testing.T) {
	cg := NewChartGenerator(t.TempDir())

	snippet, err := cg.generateForecastLines(sampleReport())
	if err != nil {
		t.Fatalf("generateForecastLines failed: %v", err)
	}

	if !strings.Contains(snippet.HTML, "Delhi") || !strings.Contains(snippet.HTML, "London") {
		t.Error("Forecast lines should include every successful city")
	}
	if strings.Contains(snippet.HTML, "Atlantis") {
		t.Error("Forecast lines should exclude failed cities")
	}
}

func TestSnippetsFailWithoutSuccesses(t *testing.T) {
	cg := NewChartGenerator(t.TempDir())
	report := &models.AggregateReport{
		Timestamp: time.Now(),
		Cities: []models.CityReport{
			{City: "Atlantis", Status: models.StatusFailure, Error: "city not found"},
		},
	}

	if _, err := cg.generateComparisonChart(report); err == nil {
		t.Error("Expected error for comparison chart with no successful cities")
	}
	if _, err := cg.generateHeatmapSnippet(report); err == nil {
		t.Error("Expected error for heatmap with no successful cities")
	}
}
