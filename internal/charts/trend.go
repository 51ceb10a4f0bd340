package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"aqimon/internal/aqi"
	"aqimon/internal/models"
)

// generateTrendChart creates a PNG line chart of a city's current value
// followed by its projected series, with the category thresholds drawn
// as horizontal grid lines.
func (cg *ChartGenerator) generateTrendChart(city models.CityReport) (string, error) {
	slug := strings.ToLower(strings.ReplaceAll(city.City, " ", "_"))
	filename := filepath.Join(cg.outputDir, fmt.Sprintf("%s_trend.png", slug))

	xValues := make([]float64, 0, len(city.Forecast.Series)+1)
	yValues := make([]float64, 0, len(city.Forecast.Series)+1)
	xValues = append(xValues, 0)
	yValues = append(yValues, city.CurrentIndex)
	for i, v := range city.Forecast.Series {
		xValues = append(xValues, float64(i+1))
		yValues = append(yValues, v)
	}

	ticks := make([]chart.Tick, len(xValues))
	for i := range xValues {
		label := fmt.Sprintf("Day %d", i)
		if i == 0 {
			label = "Today"
		}
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	// Band lower bounds as threshold lines, skipping the zero floor
	var gridLines []chart.GridLine
	for _, band := range aqi.Bands[1:] {
		gridLines = append(gridLines, chart.GridLine{Value: band.Low})
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("AQI Trend Forecast for %s", city.City),
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  800,
		Height: 450,
		XAxis: chart.XAxis{
			Name:  "Days",
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "AQI Value",
			GridMajorStyle: chart.Style{
				StrokeColor:     drawing.Color{R: 200, G: 200, B: 200, A: 160},
				StrokeWidth:     1,
				StrokeDashArray: []float64{4, 4},
			},
			GridLines: gridLines,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Projected AQI",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: bandDrawingColor(city.CurrentIndex),
					StrokeWidth: 3,
					DotWidth:    5,
					DotColor:    bandDrawingColor(city.CurrentIndex),
				},
			},
		},
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create trend chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render trend chart: %w", err)
	}

	return filename, nil
}
