package charts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"aqimon/internal/models"
)

// generateComparisonChart creates a PNG bar chart of current AQI values
// across the successful cities, each bar colored by its severity band.
func (cg *ChartGenerator) generateComparisonChart(report *models.AggregateReport) (string, error) {
	filename := filepath.Join(cg.outputDir, "comparison.png")

	var bars []chart.Value
	for _, city := range report.Cities {
		if !city.Succeeded() {
			continue
		}
		bars = append(bars, chart.Value{
			Value: city.CurrentIndex,
			Label: fmt.Sprintf("%s\n%.0f", city.City, city.CurrentIndex),
			Style: chart.Style{
				FillColor:   bandDrawingColor(city.CurrentIndex),
				StrokeColor: drawing.Color{R: 52, G: 58, B: 64, A: 255},
				StrokeWidth: 1,
			},
		})
	}

	if len(bars) == 0 {
		return "", fmt.Errorf("no successful cities to compare")
	}

	maxValue := 0.0
	for _, bar := range bars {
		if bar.Value > maxValue {
			maxValue = bar.Value
		}
	}
	if maxValue == 0 {
		maxValue = 50
	}

	graph := chart.BarChart{
		Title: "Current AQI Comparison Across Cities",
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 60, Right: 40, Bottom: 60},
			FillColor: drawing.Color{R: 248, G: 249, B: 250, A: 255},
		},
		Width:    900,
		Height:   450,
		BarWidth: 80,
		YAxis: chart.YAxis{
			Name: "AQI Value",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: maxValue * 1.15,
			},
		},
		Bars: bars,
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create comparison chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render comparison chart: %w", err)
	}

	return filename, nil
}
