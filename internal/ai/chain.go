package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type enricherChain struct {
	primary  Enricher
	fallback Enricher
}

// WithFallback returns an enricher that first tries the primary implementation and
// falls back to the provided enricher when the primary is unavailable or produces an
// unusable response.
func WithFallback(primary, fallback Enricher) Enricher {
	if isNil(primary) {
		return fallback
	}
	if isNil(fallback) {
		return primary
	}
	return &enricherChain{primary: primary, fallback: fallback}
}

func (c *enricherChain) Enabled() bool {
	if c == nil {
		return false
	}
	return c.primary.Enabled() || c.fallback.Enabled()
}

func (c *enricherChain) Enrich(ctx context.Context, prompt Prompt) (Enrichment, error) {
	if c == nil {
		return Enrichment{}, ErrDisabled
	}
	var primaryErr error
	if c.primary.Enabled() {
		enrichment, err := c.primary.Enrich(ctx, prompt)
		if err == nil && strings.TrimSpace(enrichment.Narrative) != "" {
			return enrichment, nil
		}
		primaryErr = err
	}
	if ctx.Err() != nil {
		return Enrichment{}, ctx.Err()
	}
	if c.fallback.Enabled() {
		enrichment, err := c.fallback.Enrich(ctx, prompt)
		if err != nil {
			return Enrichment{}, errors.Join(primaryErr, err)
		}
		return enrichment, nil
	}
	if primaryErr != nil {
		return Enrichment{}, primaryErr
	}
	return Enrichment{}, ErrDisabled
}

// isNil catches typed nil pointers stored in the interface, which happens when a
// constructor returned ErrDisabled.
func isNil(e Enricher) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *Client:
		return v == nil
	case *GeminiClient:
		return v == nil
	}
	return false
}

// NewEnricher builds the OpenAI client with the Gemini client as its fallback. Providers
// without credentials are skipped; nil is returned when neither is configured.
func NewEnricher(ctx context.Context, openai Config, gemini GeminiConfig) (Enricher, error) {
	var primary, fallback Enricher
	client, err := NewClient(openai)
	switch {
	case err == nil:
		primary = client
	case !errors.Is(err, ErrDisabled):
		return nil, fmt.Errorf("openai client: %w", err)
	}
	gem, err := NewGeminiClient(ctx, gemini)
	switch {
	case err == nil:
		fallback = gem
	case !errors.Is(err, ErrDisabled):
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if primary == nil && fallback == nil {
		return nil, nil
	}
	return WithFallback(primary, fallback), nil
}
