package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmarcas/backend/internal/scoring"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "PORT", "SERVER_PORT", "AI_TIMEOUT", "SCORING_BASELINE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Server.Port)
	assert.Equal(t, "data/webmarcas.db", cfg.Database.Path)
	assert.Equal(t, 20*time.Second, cfg.AI.Timeout)
	assert.Equal(t, scoring.DefaultRules(), cfg.Scoring)
	assert.Empty(t, cfg.AI.OpenAI.APIKey)
	assert.Equal(t, 1200, cfg.AI.Gemini.MaxTokens)
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
  allowed_origins: ["https://webmarcas.net"]
ai:
  timeout: 5s
  openai:
    model: gpt-4o
scoring:
  baseline: 60
  invented_bonus: 15
`), 0o600))

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://webmarcas.net"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "gpt-4o", cfg.AI.OpenAI.Model)
	assert.Equal(t, "sk-test", cfg.AI.OpenAI.APIKey)
	assert.Equal(t, 60, cfg.Scoring.Baseline)
	assert.Equal(t, 15, cfg.Scoring.InventedBonus)
	assert.Equal(t, scoring.DefaultRules().MaxScore, cfg.Scoring.MaxScore)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	broken := *cfg
	broken.Server.Port = 0
	broken.Log.Format = "xml"
	broken.Scoring.MinScore = 99
	err = broken.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "log.format")
	assert.Contains(t, err.Error(), "scoring range")
}

func TestClientConfigs(t *testing.T) {
	section := AIConfig{
		Timeout: 7 * time.Second,
		OpenAI:  OpenAIConfig{APIKey: "sk", Model: "gpt-4o", MaxTokens: 900, Temperature: 0.2},
		Gemini:  GeminiConfig{APIKey: "g", Model: "gemini-2.0-flash", Temperature: 0.5, MaxTokens: 2048},
	}

	openai := section.OpenAIClientConfig()
	assert.Equal(t, "sk", openai.APIKey)
	assert.Equal(t, 7*time.Second, openai.Timeout)
	assert.Equal(t, 900, openai.MaxTokens)

	gemini := section.GeminiClientConfig()
	assert.Equal(t, "g", gemini.APIKey)
	assert.Equal(t, float32(0.5), gemini.Temperature)
	assert.Equal(t, int32(2048), gemini.MaxOutputTokens)
}
