package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/JaimeStill/screener/internal/config"
)

// GeminiGenerator calls the Gemini API with JSON output requested.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiGenerator creates a generator for the Gemini API backend.
func NewGeminiGenerator(ctx context.Context, cfg *config.ScoringConfig) (*GeminiGenerator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	gen := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if cfg.Temperature != nil {
		t := float32(*cfg.Temperature)
		gen.Temperature = &t
	}

	return &GeminiGenerator{
		client: client,
		model:  cfg.Model,
		config: gen,
	}, nil
}

// GenerateContent sends the prompt and joins the text parts of every returned candidate.
func (g *GeminiGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(part.Text)
		}
	}

	return b.String(), nil
}

// Model returns the configured model name.
func (g *GeminiGenerator) Model() string {
	return g.model
}
