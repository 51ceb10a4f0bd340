package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the AQI monitoring service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8980"`

	// WAQI feed configuration
	WAQIAPIToken string `env:"WAQI_API_TOKEN"`
	WAQIBaseURL  string `env:"WAQI_BASE_URL,default=https://api.waqi.info/feed/"`

	// Air quality advisories RSS feed (optional)
	AdvisoriesFeedURL string `env:"ADVISORIES_FEED_URL"`

	// Forecast configuration
	ForecastDays int     `env:"FORECAST_DAYS,default=7"`
	GrowthRate   float64 `env:"GROWTH_RATE,default=0.04"`

	// Cities used for the comparison section when none are requested
	DefaultCities []string `env:"DEFAULT_CITIES,delimiter=;,default=Delhi;Beijing;New York;London"`

	// OpenAI configuration (optional; a deterministic narrative is used
	// when no key is configured)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4.1"`

	// GCP configuration (optional for local runs)
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCSBucket    string `env:"GCS_BUCKET"`

	// Local run configuration
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`
	MockupMode      bool   `env:"MOCKUP_MODE,default=false"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.ForecastDays < 1 {
		return nil, fmt.Errorf("FORECAST_DAYS must be at least 1, got %d", cfg.ForecastDays)
	}
	// Mockup mode runs without the live feed, so the token is only
	// required for real fetches
	if !cfg.MockupMode && cfg.WAQIAPIToken == "" {
		return nil, fmt.Errorf("WAQI_API_TOKEN is required unless MOCKUP_MODE is enabled")
	}
	return &cfg, nil
}
