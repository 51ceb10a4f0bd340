package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aqimon/internal/charts"
	"aqimon/internal/logger"
	"aqimon/internal/models"
	"aqimon/internal/storage"
)

// NarrativeClient generates the markdown narrative for a report.
// Implemented by the LLM client; when nil the deterministic markdown
// renderer is used instead.
type NarrativeClient interface {
	GenerateNarrative(ctx context.Context, report *models.AggregateReport) (string, error)
}

// AdvisoryFetcher supplies active air quality advisories for a report
type AdvisoryFetcher interface {
	FetchAdvisories(ctx context.Context) ([]models.Advisory, error)
}

// GeneratedFiles contains all files generated for a report
type GeneratedFiles struct {
	FolderPath      string
	HTMLContent     string
	MarkdownContent string
	DataJSON        []byte
	CSSContent      string
	ChartFiles      []string
}

// Generator orchestrates the full report pipeline: aggregate the city
// data, write the narrative, render charts and HTML, and persist
// everything through the storage client.
type Generator struct {
	builder     *Builder
	htmlBuilder *HTMLBuilder
	narrative   NarrativeClient
	advisories  AdvisoryFetcher
	store       storage.StorageClient
	log         *logger.Logger
}

// NewGenerator creates a report generator. narrative and advisories may
// be nil; storage is required for Persist but not for Generate.
func NewGenerator(builder *Builder, store storage.StorageClient, narrative NarrativeClient, advisories AdvisoryFetcher) *Generator {
	return &Generator{
		builder:     builder,
		htmlBuilder: NewHTMLBuilder(),
		narrative:   narrative,
		advisories:  advisories,
		store:       store,
		log:         logger.GetGlobalLogger().WithComponent("generator"),
	}
}

// Generate builds the aggregate report and renders all report files in
// a temporary directory. Chart PNGs are listed in GeneratedFiles and
// moved by Persist.
func (g *Generator) Generate(ctx context.Context, cities []string) (*models.AggregateReport, *GeneratedFiles, error) {
	report := g.builder.BuildAggregateReport(ctx, cities)

	if g.advisories != nil {
		advisories, err := g.advisories.FetchAdvisories(ctx)
		if err != nil {
			g.log.Warn("advisories unavailable", logger.Fields{"reason": err.Error()})
		} else {
			report.Advisories = advisories
		}
	}

	files, err := g.renderFiles(ctx, &report)
	if err != nil {
		return &report, nil, err
	}
	return &report, files, nil
}

// renderFiles produces the markdown, HTML, JSON and chart artifacts
func (g *Generator) renderFiles(ctx context.Context, report *models.AggregateReport) (*GeneratedFiles, error) {
	files := &GeneratedFiles{
		FolderPath: storage.GenerateReportFolderPath(report.Timestamp),
	}

	files.MarkdownContent = g.narrativeFor(ctx, report)

	dataJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report data: %w", err)
	}
	files.DataJSON = dataJSON

	// Charts render into a scratch dir; Persist moves them into storage
	tempDir, err := os.MkdirTemp("", "aqimon_charts_")
	if err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	chartData, err := g.htmlBuilder.GenerateChartData(report, tempDir)
	if err != nil {
		g.log.Warn("chart snippets unavailable", logger.Fields{"reason": err.Error()})
		chartData = &ChartTemplateData{}
	}

	chartGen := charts.NewChartGenerator(tempDir)
	chartFiles, err := chartGen.GenerateCharts(report)
	if err != nil {
		g.log.Warn("chart images unavailable", logger.Fields{"reason": err.Error()})
	}
	files.ChartFiles = chartFiles

	htmlContent, err := g.htmlBuilder.ConvertMarkdownToHTML(files.MarkdownContent)
	if err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	fullHTML, err := g.htmlBuilder.BuildCompleteHTML(htmlContent, report, chartData, "")
	if err != nil {
		return nil, fmt.Errorf("failed to build HTML: %w", err)
	}
	files.HTMLContent = fullHTML

	css, err := g.htmlBuilder.GenerateStaticCSS()
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSS: %w", err)
	}
	files.CSSContent = css

	return files, nil
}

// narrativeFor returns the LLM narrative when configured, falling back
// to the deterministic markdown rendering
func (g *Generator) narrativeFor(ctx context.Context, report *models.AggregateReport) string {
	if g.narrative == nil {
		return MarkdownReport(report)
	}

	narrative, err := g.narrative.GenerateNarrative(ctx, report)
	if err != nil {
		g.log.Warn("narrative generation failed, using fallback", logger.Fields{"reason": err.Error()})
		return MarkdownReport(report)
	}
	return narrative
}

// Persist stores all generated files under the report's folder path
func (g *Generator) Persist(ctx context.Context, files *GeneratedFiles) error {
	if g.store == nil {
		return fmt.Errorf("no storage client configured")
	}

	stored := map[string][]byte{
		"index.html": []byte(files.HTMLContent),
		"report.md":  []byte(files.MarkdownContent),
		"data.json":  files.DataJSON,
		"styles.css": []byte(files.CSSContent),
	}

	for name, data := range stored {
		target := files.FolderPath + "/" + name
		if err := g.store.StoreFile(ctx, target, data); err != nil {
			return fmt.Errorf("failed to store %s: %w", name, err)
		}
	}

	for _, chartFile := range files.ChartFiles {
		data, err := os.ReadFile(chartFile)
		if err != nil {
			g.log.Warn("chart file unreadable", logger.Fields{"file": chartFile, "reason": err.Error()})
			continue
		}
		target := files.FolderPath + "/" + filepath.Base(chartFile)
		if err := g.store.StoreFile(ctx, target, data); err != nil {
			return fmt.Errorf("failed to store chart %s: %w", chartFile, err)
		}
		os.Remove(chartFile)
	}
	if len(files.ChartFiles) > 0 {
		os.Remove(filepath.Dir(files.ChartFiles[0]))
	}

	g.log.Info("report persisted", logger.Fields{"folder": files.FolderPath})
	return nil
}

// GenerateAndPersist runs the full pipeline end to end
func (g *Generator) GenerateAndPersist(ctx context.Context, cities []string) (*models.AggregateReport, string, error) {
	started := time.Now()

	report, files, err := g.Generate(ctx, cities)
	if err != nil {
		return report, "", err
	}
	if err := g.Persist(ctx, files); err != nil {
		return report, "", err
	}

	g.log.Info("report generation completed", logger.Fields{
		"folder":   files.FolderPath,
		"duration": time.Since(started).String(),
	})
	return report, files.FolderPath, nil
}
