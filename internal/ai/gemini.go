package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig holds Gemini configuration parameters.
type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// GeminiClient implements the Enricher interface against the Gemini API. It is wired
// as the fallback behind the OpenAI client.
type GeminiClient struct {
	models          *genai.Models
	model           string
	temperature     float32
	maxOutputTokens int32
}

// NewGeminiClient constructs a GeminiClient. It returns ErrDisabled without an API key.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrDisabled
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.3
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 1200
	}
	return &GeminiClient{
		models:          client.Models,
		model:           model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

// Enabled reports whether the client can make outbound calls.
func (g *GeminiClient) Enabled() bool {
	return g != nil && g.models != nil
}

// Name identifies the provider in logs and persisted verdicts.
func (g *GeminiClient) Name() string {
	return "gemini"
}

// Enrich requests the narrative analysis from Gemini.
func (g *GeminiClient) Enrich(ctx context.Context, prompt Prompt) (Enrichment, error) {
	if !g.Enabled() {
		return Enrichment{}, ErrDisabled
	}

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       &temperature,
		MaxOutputTokens:   g.maxOutputTokens,
		ResponseMIMEType:  "application/json",
	}
	contents := []*genai.Content{
		genai.NewContentFromText(BuildUserPrompt(prompt), genai.RoleUser),
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return Enrichment{}, fmt.Errorf("gemini request: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Enrichment{}, ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	enrichment, err := ParseEnrichment(text.String())
	if err != nil {
		return Enrichment{}, err
	}
	enrichment.Provider = g.Name()
	return enrichment, nil
}
