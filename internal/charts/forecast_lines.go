package charts

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"aqimon/internal/models"
)

// generateForecastLines creates a multi-city projected AQI line chart
// rendered as a self-contained HTML fragment.
func (cg *ChartGenerator) generateForecastLines(report *models.AggregateReport) (ChartSnippet, error) {
	id := "chart-forecast-lines"

	days := 0
	for _, city := range report.Cities {
		if city.Succeeded() && len(city.Forecast.Series) > days {
			days = len(city.Forecast.Series)
		}
	}
	if days == 0 {
		return ChartSnippet{}, fmt.Errorf("no forecast data to chart")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Projected AQI Trends",
			Subtitle: fmt.Sprintf("%d-day air quality projection", days),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Day",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "AQI",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
	)

	xAxis := make([]string, days+1)
	xAxis[0] = "Today"
	for i := 1; i <= days; i++ {
		xAxis[i] = fmt.Sprintf("Day %d", i)
	}

	line.SetXAxis(xAxis)
	for _, city := range report.Cities {
		if !city.Succeeded() {
			continue
		}
		points := make([]opts.LineData, 0, len(city.Forecast.Series)+1)
		points = append(points, opts.LineData{Value: city.CurrentIndex})
		for _, v := range city.Forecast.Series {
			points = append(points, opts.LineData{Value: v})
		}
		line.AddSeries(city.City, points)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: true}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return ChartSnippet{}, err
	}

	html := buf.String()
	return ChartSnippet{ID: id, Title: "Projected AQI Trends", HTML: html}, nil
}
