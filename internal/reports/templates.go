package reports

import (
	"os"
	"path/filepath"
)

// TemplateLoader handles loading the HTML template and CSS styles.
// Files on disk under internal/templates take precedence so a deployment
// can restyle reports without a rebuild; otherwise the built-in defaults
// are used.
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

// LoadHTMLTemplate returns the report page template
func (t *TemplateLoader) LoadHTMLTemplate() (string, error) {
	templatePath := filepath.Join("internal", "templates", "report_template.html")
	if content, err := os.ReadFile(templatePath); err == nil {
		return string(content), nil
	}
	return defaultHTMLTemplate, nil
}

// LoadCSSStyles returns the report stylesheet
func (t *TemplateLoader) LoadCSSStyles() (string, error) {
	cssPath := filepath.Join("internal", "templates", "styles.css")
	if content, err := os.ReadFile(cssPath); err == nil {
		return string(content), nil
	}
	return defaultCSS, nil
}

const defaultHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Air Quality Report - {{.Date}}</title>
<link rel="stylesheet" href="{{.CSSFilePath}}">
<script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
</head>
<body>
<div class="container">
	<header>
		<h1>Air Quality Report</h1>
		<p class="subtitle">{{.Date}}</p>
	</header>

	<section class="charts-row">
		{{.AQIGaugeChart}}
	</section>

	<main class="report-content">
		{{.Content}}
	</main>

	<section class="charts-row">
		{{.ForecastLinesChart}}
	</section>

	<section class="charts-row">
		{{.PredictionHeatmapChart}}
	</section>

	<footer>
		<p>Generated at {{.GeneratedAt}} by aqimon v{{.Version}}</p>
		<p>Data from the World Air Quality Index project</p>
	</footer>
</div>
</body>
</html>
`

const defaultCSS = `body {
	margin: 0;
	font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
	background: #f4f6f8;
	color: #212529;
	line-height: 1.6;
}

.container {
	max-width: 960px;
	margin: 0 auto;
	padding: 24px;
}

header {
	text-align: center;
	padding: 16px 0 24px;
}

header h1 {
	margin: 0;
	font-size: 2em;
}

.subtitle {
	color: #6c757d;
	margin-top: 4px;
}

.report-content {
	background: #ffffff;
	border-radius: 8px;
	padding: 24px 32px;
	box-shadow: 0 1px 3px rgba(0, 0, 0, 0.08);
}

.report-content table {
	border-collapse: collapse;
	width: 100%;
	margin: 16px 0;
}

.report-content th,
.report-content td {
	border: 1px solid #dee2e6;
	padding: 8px 12px;
	text-align: left;
}

.report-content th {
	background: #e9ecef;
}

.charts-row {
	margin: 24px 0;
}

.chart-item,
.gauge-item {
	background: #ffffff;
	border-radius: 8px;
	padding: 16px;
	box-shadow: 0 1px 3px rgba(0, 0, 0, 0.08);
}

.chart-item h4,
.gauge-item h4 {
	margin: 0 0 8px;
	text-align: center;
}

footer {
	text-align: center;
	color: #6c757d;
	font-size: 0.85em;
	padding: 24px 0 8px;
}
`
