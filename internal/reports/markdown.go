package reports

import (
	"fmt"
	"strings"

	"aqimon/internal/models"
)

// MarkdownReport renders an aggregate report as a markdown document.
// It is fully deterministic and serves as the narrative fallback when
// no LLM is configured.
func MarkdownReport(report *models.AggregateReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Air Quality Report: %s\n\n", report.Timestamp.Format("January 2, 2006")))

	b.WriteString("## Summary\n\n")
	s := report.Summary
	b.WriteString(fmt.Sprintf("Monitored %d cities: %d succeeded, %d failed.\n\n",
		s.TotalCities, s.Successes, s.Failures))

	if s.Successes > 0 {
		b.WriteString(fmt.Sprintf("- **Average AQI:** %.1f\n", s.AverageIndex))
		if s.Highest != nil {
			b.WriteString(fmt.Sprintf("- **Highest:** %s (%.0f)\n", s.Highest.City, s.Highest.Index))
		}
		if s.Lowest != nil {
			b.WriteString(fmt.Sprintf("- **Lowest:** %s (%.0f)\n", s.Lowest.City, s.Lowest.Index))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No city data could be retrieved.\n\n")
	}

	b.WriteString("## Current Conditions\n\n")
	b.WriteString("| City | AQI | Category | Trend |\n")
	b.WriteString("|------|-----|----------|-------|\n")
	for _, city := range report.Cities {
		if city.Succeeded() {
			b.WriteString(fmt.Sprintf("| %s | %.0f | %s | %s |\n",
				city.City, city.CurrentIndex, city.Category.Label, city.Forecast.Trend))
		} else {
			b.WriteString(fmt.Sprintf("| %s | - | unavailable | - |\n", city.City))
		}
	}
	b.WriteString("\n")

	for _, city := range report.Cities {
		b.WriteString(fmt.Sprintf("## %s\n\n", city.City))
		if !city.Succeeded() {
			b.WriteString(fmt.Sprintf("Data unavailable: %s\n\n", city.Error))
			continue
		}
		b.WriteString(fmt.Sprintf("Current AQI in %s: %.0f (%s)\n\n",
			city.City, city.CurrentIndex, city.Category.Label))
		f := city.Forecast
		b.WriteString(fmt.Sprintf("Projection over the next %d days shows a %s trend, ranging from %.1f to %.1f (average %.1f).\n\n",
			len(f.Series), f.Trend, f.Min, f.Max, f.Avg))
	}

	if len(report.Advisories) > 0 {
		b.WriteString("## Active Advisories\n\n")
		for _, adv := range report.Advisories {
			b.WriteString(fmt.Sprintf("- **%s** severity (%s): %s\n", adv.Severity, adv.Source, adv.Description))
		}
		b.WriteString("\n")
	}

	return b.String()
}
