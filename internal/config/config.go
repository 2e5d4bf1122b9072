package config

import (
	"time"

	"webmarcas/backend/internal/ai"
	"webmarcas/backend/internal/scoring"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	AI       AIConfig       `mapstructure:"ai"`
	Scoring  scoring.Rules  `mapstructure:"scoring"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Path   string `mapstructure:"path"`
	Silent bool   `mapstructure:"silent"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AIConfig struct {
	Disabled           bool          `mapstructure:"disabled"`
	Timeout            time.Duration `mapstructure:"timeout"`
	NearMatchThreshold float64       `mapstructure:"near_match_threshold"`
	OpenAI             OpenAIConfig  `mapstructure:"openai"`
	Gemini             GeminiConfig  `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// OpenAIClientConfig maps the OpenAI section onto the client configuration.
func (a AIConfig) OpenAIClientConfig() ai.Config {
	return ai.Config{
		APIKey:      a.OpenAI.APIKey,
		Model:       a.OpenAI.Model,
		BaseURL:     a.OpenAI.BaseURL,
		Temperature: a.OpenAI.Temperature,
		MaxTokens:   a.OpenAI.MaxTokens,
		Timeout:     a.Timeout,
	}
}

// GeminiClientConfig maps the Gemini section onto the client configuration.
func (a AIConfig) GeminiClientConfig() ai.GeminiConfig {
	return ai.GeminiConfig{
		APIKey:          a.Gemini.APIKey,
		Model:           a.Gemini.Model,
		Temperature:     float32(a.Gemini.Temperature),
		MaxOutputTokens: int32(a.Gemini.MaxTokens),
	}
}
