package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"aqimon/internal/charts"
	"aqimon/internal/config"
	"aqimon/internal/models"
)

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	goldmark       goldmark.Markdown
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(), // Chart snippets arrive as raw HTML
		),
	)

	return &HTMLBuilder{
		templateLoader: NewTemplateLoader(),
		goldmark:       md,
	}
}

// TemplateData represents the data structure for the HTML template
type TemplateData struct {
	Date        string
	GeneratedAt string
	Content     template.HTML
	CSSFilePath string
	Version     string

	AQIGaugeChart          template.HTML
	PredictionHeatmapChart template.HTML
	ForecastLinesChart     template.HTML
}

// ChartTemplateData represents chart snippets for template substitution
type ChartTemplateData struct {
	AQIGaugeChart          template.HTML
	PredictionHeatmapChart template.HTML
	ForecastLinesChart     template.HTML
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// GenerateStaticCSS returns the stylesheet saved alongside each report
func (h *HTMLBuilder) GenerateStaticCSS() (string, error) {
	cssContent, err := h.templateLoader.LoadCSSStyles()
	if err != nil {
		return "", fmt.Errorf("failed to load CSS: %w", err)
	}
	return cssContent, nil
}

// GenerateChartData creates the embeddable chart snippets for a report
func (h *HTMLBuilder) GenerateChartData(report *models.AggregateReport, outputDir string) (*ChartTemplateData, error) {
	chartGen := charts.NewChartGenerator(outputDir)

	snippets, err := chartGen.GenerateSnippets(report)
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart snippets: %w", err)
	}

	chartData := &ChartTemplateData{}
	for _, snippet := range snippets {
		switch snippet.ID {
		case "chart-aqi-gauge":
			chartData.AQIGaugeChart = template.HTML(snippet.HTML)
		case "chart-prediction-heatmap":
			chartData.PredictionHeatmapChart = template.HTML(snippet.HTML)
		case "chart-forecast-lines":
			chartData.ForecastLinesChart = template.HTML(snippet.HTML)
		}
	}

	return chartData, nil
}

// getCSSFilePath returns the stylesheet path for the deployment mode
func (h *HTMLBuilder) getCSSFilePath(folderPath string) string {
	if folderPath == "" {
		return "styles.css"
	}
	return folderPath + "/styles.css"
}

// BuildCompleteHTML creates a complete HTML document with template substitution
func (h *HTMLBuilder) BuildCompleteHTML(
	htmlContent string,
	report *models.AggregateReport,
	chartData *ChartTemplateData,
	folderPath string) (string, error) {

	templateData := TemplateData{
		Date:                   report.Timestamp.Format("2006-01-02"),
		GeneratedAt:            time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Content:                template.HTML(htmlContent),
		CSSFilePath:            h.getCSSFilePath(folderPath),
		Version:                config.GetVersion(),
		AQIGaugeChart:          chartData.AQIGaugeChart,
		PredictionHeatmapChart: chartData.PredictionHeatmapChart,
		ForecastLinesChart:     chartData.ForecastLinesChart,
	}

	return h.executeTemplate(templateData)
}

// executeTemplate executes the report page template
func (h *HTMLBuilder) executeTemplate(data TemplateData) (string, error) {
	htmlTemplate, err := h.templateLoader.LoadHTMLTemplate()
	if err != nil {
		return "", fmt.Errorf("failed to load HTML template: %w", err)
	}

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
