package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sashabaranov/go-openai"

	"aqimon/internal/logger"
	"aqimon/internal/models"
)

// OpenAIClient generates narrative report text from aggregate air
// quality data
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    logger.GetGlobalLogger().WithComponent("llm"),
	}
}

// GenerateNarrative produces a markdown report narrative for the
// aggregate data
func (c *OpenAIClient) GenerateNarrative(ctx context.Context, report *models.AggregateReport) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	c.log.Info("Generating narrative", logger.Fields{
		"date":   report.Timestamp.Format("2006-01-02"),
		"cities": len(report.Cities),
	})

	systemPrompt, err := c.loadSystemPrompt()
	if err != nil {
		c.log.Debug("Using built-in system prompt", logger.Fields{"reason": err.Error()})
		systemPrompt = c.getDefaultSystemPrompt()
	}

	prompt, err := c.buildPrompt(report)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   4000,
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	narrative := resp.Choices[0].Message.Content
	c.log.Info("Narrative generated", logger.Fields{"chars": len(narrative)})

	return narrative, nil
}

// loadSystemPrompt loads the system prompt from file
func (c *OpenAIClient) loadSystemPrompt() (string, error) {
	promptPath := filepath.Join("internal", "templates", "system_prompt.txt")
	content, err := os.ReadFile(promptPath)
	if err != nil {
		return "", fmt.Errorf("system prompt file not found: %w", err)
	}
	return string(content), nil
}

// getDefaultSystemPrompt returns a fallback system prompt
func (c *OpenAIClient) getDefaultSystemPrompt() string {
	return "You are an air quality analyst. Generate a concise daily air quality report in markdown format based on the provided AQI readings and projections. Explain what the severity categories mean for residents and give practical health advice. Keep the structure: summary, per-city conditions, outlook."
}

// buildPrompt serializes the aggregate data for the model
func (c *OpenAIClient) buildPrompt(report *models.AggregateReport) (string, error) {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report data: %w", err)
	}

	prompt := fmt.Sprintf(`## Air Quality Data (as of %s)

The data below contains current AQI readings per city, a deterministic multi-day projection for each, and the aggregate summary. AQI values follow the 0-500 US EPA scale.

`+"```json\n%s\n```"+`

### Instructions:
Write a markdown report with:
1. An overall summary of air quality across the monitored cities
2. A short section per city covering the current reading, its severity category, and the projected trend
3. Health recommendations appropriate for the worst categories observed
4. A note on any cities whose data could not be retrieved

Do not invent measurements that are not in the data.`,
		report.Timestamp.Format("2006-01-02 15:04 UTC"), string(jsonData))

	return prompt, nil
}
