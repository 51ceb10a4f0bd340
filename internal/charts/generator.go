package charts

import (
	"aqimon/internal/logger"
	"aqimon/internal/models"
)

// ChartGenerator handles creation of chart images and HTML snippets
type ChartGenerator struct {
	outputDir string
	log       *logger.Logger
}

// NewChartGenerator creates a new chart generator writing PNGs into
// outputDir
func NewChartGenerator(outputDir string) *ChartGenerator {
	return &ChartGenerator{
		outputDir: outputDir,
		log:       logger.GetGlobalLogger().WithComponent("charts"),
	}
}

// GenerateCharts creates all static chart images for an aggregate
// report and returns the file paths that were written. A failed chart is
// logged and skipped rather than aborting the rest.
func (cg *ChartGenerator) GenerateCharts(report *models.AggregateReport) ([]string, error) {
	var chartFiles []string

	for _, city := range report.Cities {
		if !city.Succeeded() {
			continue
		}
		if trendChart, err := cg.generateTrendChart(city); err == nil {
			chartFiles = append(chartFiles, trendChart)
		} else {
			cg.log.Warn("trend chart skipped", logger.Fields{"city": city.City, "reason": err.Error()})
		}
	}

	if comparisonChart, err := cg.generateComparisonChart(report); err == nil {
		chartFiles = append(chartFiles, comparisonChart)
	} else {
		cg.log.Warn("comparison chart skipped", logger.Fields{"reason": err.Error()})
	}

	return chartFiles, nil
}

// GenerateSnippets creates the embeddable ECharts fragments for an
// aggregate report: one gauge per successful city, the prediction
// heatmap, and the multi-city forecast lines.
func (cg *ChartGenerator) GenerateSnippets(report *models.AggregateReport) ([]ChartSnippet, error) {
	var snippets []ChartSnippet

	for _, city := range report.Cities {
		if !city.Succeeded() {
			continue
		}
		snippet, err := cg.generateGaugeSnippet(city)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, snippet)
		break // One gauge for the lead city only
	}

	heatmap, err := cg.generateHeatmapSnippet(report)
	if err != nil {
		return nil, err
	}
	snippets = append(snippets, heatmap)

	lines, err := cg.generateForecastLines(report)
	if err != nil {
		return nil, err
	}
	snippets = append(snippets, lines)

	return snippets, nil
}
