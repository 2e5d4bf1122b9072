package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmarcas/backend/internal/scoring"
)

const sampleReply = "```json\n" + `{
  "level": "HIGH",
  "distinctiveness_score": 99,
  "narrative": "  A marca apresenta boa distintividade.  ",
  "observations": ["Nome inventado", " "],
  "risks": [],
  "recommendations": ["Deposite nas classes 9 e 42"],
  "potential_conflicts": ["webmarket"]
}` + "\n```"

func TestParseEnrichment(t *testing.T) {
	enrichment, err := ParseEnrichment(sampleReply)
	require.NoError(t, err)
	assert.Equal(t, "A marca apresenta boa distintividade.", enrichment.Narrative)
	require.NotNil(t, enrichment.DistinctivenessScore)
	assert.Equal(t, []string{"webmarket"}, enrichment.PotentialConflicts)
}

func TestParseEnrichmentRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", "   "},
		{"not json", "sem resposta"},
		{"missing narrative", `{"level":"high"}`},
		{"blank narrative", `{"narrative":""}`},
		{"wrong list type", `{"narrative":"ok","risks":"nenhum"}`},
		{"score out of range", `{"narrative":"ok","distinctiveness_score":400}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseEnrichment(tc.content)
			assert.Error(t, err)
		})
	}
}

func TestSanitize(t *testing.T) {
	rules := scoring.DefaultRules()

	enrichment, err := ParseEnrichment(sampleReply)
	require.NoError(t, err)
	Sanitize(&enrichment, rules)
	assert.Equal(t, "high", enrichment.Level)
	assert.Equal(t, rules.MaxScore, *enrichment.DistinctivenessScore)
	assert.Equal(t, []string{"Nome inventado"}, enrichment.Observations)
	assert.Nil(t, enrichment.Risks)

	score := 30
	derived := Enrichment{Level: "excelente", DistinctivenessScore: &score}
	Sanitize(&derived, rules)
	assert.Equal(t, "low", derived.Level)

	unknown := Enrichment{Level: "excelente"}
	Sanitize(&unknown, rules)
	assert.Empty(t, unknown.Level)

	Sanitize(nil, rules)
}

func TestNewClientWithoutKeyIsDisabled(t *testing.T) {
	client, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Nil(t, client)
	assert.False(t, client.Enabled())

	_, err = client.Enrich(context.Background(), Prompt{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestClientEnrich(t *testing.T) {
	var request map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": sampleReply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL + "/"})
	require.NoError(t, err)

	enrichment, err := client.Enrich(context.Background(), Prompt{
		BrandName:    "WebMarcas",
		BusinessArea: "Tecnologia",
		Classes:      []scoring.Class{{Code: 9, Description: "Classe 09 - Software"}},
		Score:        70,
		Level:        scoring.LevelHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, "openai", enrichment.Provider)
	assert.Equal(t, "gpt-4o-mini", request["model"])

	messages, ok := request["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	user := messages[1].(map[string]any)
	assert.Contains(t, user["content"], "Marca: WebMarcas")
	assert.Contains(t, user["content"], "Classe 09 - Software")
}

func TestClientEnrichErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Enrich(context.Background(), Prompt{BrandName: "WebMarcas"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

type stubEnricher struct {
	enabled bool
	result  Enrichment
	err     error
	calls   int
}

func (s *stubEnricher) Enabled() bool { return s.enabled }

func (s *stubEnricher) Enrich(context.Context, Prompt) (Enrichment, error) {
	s.calls++
	return s.result, s.err
}

func TestWithFallback(t *testing.T) {
	t.Run("primary succeeds", func(t *testing.T) {
		primary := &stubEnricher{enabled: true, result: Enrichment{Narrative: "primário"}}
		fallback := &stubEnricher{enabled: true, result: Enrichment{Narrative: "reserva"}}

		got, err := WithFallback(primary, fallback).Enrich(context.Background(), Prompt{})
		require.NoError(t, err)
		assert.Equal(t, "primário", got.Narrative)
		assert.Equal(t, 0, fallback.calls)
	})

	t.Run("primary fails", func(t *testing.T) {
		primary := &stubEnricher{enabled: true, err: errors.New("boom")}
		fallback := &stubEnricher{enabled: true, result: Enrichment{Narrative: "reserva"}}

		got, err := WithFallback(primary, fallback).Enrich(context.Background(), Prompt{})
		require.NoError(t, err)
		assert.Equal(t, "reserva", got.Narrative)
		assert.Equal(t, 1, primary.calls)
	})

	t.Run("both fail", func(t *testing.T) {
		primary := &stubEnricher{enabled: true, err: errors.New("boom")}
		fallback := &stubEnricher{enabled: true, err: errors.New("bang")}

		_, err := WithFallback(primary, fallback).Enrich(context.Background(), Prompt{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
		assert.Contains(t, err.Error(), "bang")
	})

	t.Run("disabled", func(t *testing.T) {
		chain := WithFallback(&stubEnricher{}, &stubEnricher{})
		assert.False(t, chain.Enabled())
		_, err := chain.Enrich(context.Background(), Prompt{})
		assert.ErrorIs(t, err, ErrDisabled)
	})

	t.Run("typed nil collapses", func(t *testing.T) {
		var client *Client
		fallback := &stubEnricher{enabled: true}
		assert.Same(t, fallback, WithFallback(client, fallback))
	})
}

func TestNewEnricherWithoutCredentials(t *testing.T) {
	enricher, err := NewEnricher(context.Background(), Config{}, GeminiConfig{})
	require.NoError(t, err)
	assert.Nil(t, enricher)

	enricher, err = NewEnricher(context.Background(), Config{APIKey: "sk"}, GeminiConfig{})
	require.NoError(t, err)
	assert.IsType(t, &Client{}, enricher)
	assert.True(t, enricher.Enabled())
}
