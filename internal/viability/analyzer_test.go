package viability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmarcas/backend/internal/ai"
	"webmarcas/backend/internal/scoring"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

func newTestAnalyzer(enricher ai.Enricher) *Analyzer {
	return NewAnalyzer(Options{Enricher: enricher, Now: fixedNow, Timeout: 50 * time.Millisecond})
}

func TestAnalyzeBlocksEveryFamousMark(t *testing.T) {
	analyzer := newTestAnalyzer(nil)
	for _, mark := range scoring.NewFamousIndex(nil).Marks() {
		t.Run(mark.Mark, func(t *testing.T) {
			verdict := analyzer.Analyze(context.Background(), BrandQuery{BrandName: mark.Mark, BusinessArea: "Tecnologia"})
			assert.True(t, verdict.Blocked)
			assert.NotEmpty(t, verdict.MatchedFamousMark)
			assert.Empty(t, verdict.Level)
			assert.Empty(t, verdict.Classes)
		})
	}
}

func TestAnalyzeDoesNotBlockAcrossWordBoundaries(t *testing.T) {
	analyzer := newTestAnalyzer(nil)
	for _, brand := range []string{"Fia Tecidos", "Pum Açaí", "Lu Berço", "Liza Rampa", "Vi Vozes"} {
		t.Run(brand, func(t *testing.T) {
			verdict := analyzer.Analyze(context.Background(), BrandQuery{BrandName: brand})
			assert.False(t, verdict.Blocked)
			assert.Empty(t, verdict.MatchedFamousMark)
			assert.True(t, verdict.Level.Valid())
		})
	}
}

func TestAnalyzeBlocksSubstringMatches(t *testing.T) {
	analyzer := newTestAnalyzer(nil)
	for _, brand := range []string{"Apple Store Brasil", "Super Nike", "NETFLIXBR", "Café Nescafé"} {
		t.Run(brand, func(t *testing.T) {
			verdict := analyzer.Analyze(context.Background(), BrandQuery{BrandName: brand})
			assert.True(t, verdict.Blocked)
			assert.NotEmpty(t, verdict.MatchedFamousMark)
		})
	}
}

func TestAnalyzeApple(t *testing.T) {
	verdict := newTestAnalyzer(nil).Analyze(context.Background(), BrandQuery{BrandName: "Apple", BusinessArea: "qualquer ramo"})

	require.True(t, verdict.Blocked)
	assert.Contains(t, verdict.MatchedFamousMark, "apple")
	assert.Equal(t, 0, verdict.Score)
	assert.Len(t, verdict.Risks, 3)
	assert.Contains(t, verdict.Narrative, "alto renome")
	assert.Contains(t, verdict.Narrative, "art. 125")
	assert.Contains(t, verdict.Narrative, "Indeferimento automático")
	assert.Contains(t, verdict.Narrative, "criminal")
	assert.Contains(t, verdict.Narrative, "inventado")
	assert.Contains(t, verdict.Narrative, "first to file")
	assert.Equal(t, "Marca de alto renome identificada", verdict.Title())
}

func TestAnalyzeWebMarcas(t *testing.T) {
	verdict := newTestAnalyzer(nil).Analyze(context.Background(), BrandQuery{BrandName: "WebMarcas", BusinessArea: "Tecnologia"})

	require.False(t, verdict.Blocked)
	assert.Empty(t, verdict.MatchedFamousMark)
	assert.Equal(t, []int{9, 42, 35}, scoring.Codes(verdict.Classes))
	assert.Equal(t, scoring.LevelHigh, verdict.Level)
	assert.Equal(t, 70, verdict.Score)
	assert.False(t, verdict.Enriched)
	assert.Empty(t, verdict.PotentialConflicts)
	assert.Contains(t, verdict.Narrative, "CLASSES RECOMENDADAS")
	assert.Contains(t, verdict.Narrative, "Data da análise: 14/03/2026")
	assert.Contains(t, verdict.Narrative, Disclaimer)
}

func TestAnalyzeUnblockedNames(t *testing.T) {
	analyzer := newTestAnalyzer(nil)
	rules := scoring.DefaultRules()
	brands := []string{"WebMarcas", "Zyqtrix", "Maria Doces", "Loja 24 Horas", "Xyz", "Global Premium Express Solutions", "Nikke Esportes", "Pão da Vovó"}

	for _, brand := range brands {
		t.Run(brand, func(t *testing.T) {
			verdict := analyzer.Analyze(context.Background(), BrandQuery{BrandName: brand, BusinessArea: "comércio em geral"})
			require.False(t, verdict.Blocked)
			assert.True(t, verdict.Level.Valid())
			assert.GreaterOrEqual(t, verdict.Score, rules.MinScore)
			assert.LessOrEqual(t, verdict.Score, rules.MaxScore)
			assert.NotEmpty(t, verdict.Classes)
			assert.LessOrEqual(t, len(verdict.Classes), 3)
			assert.NotEmpty(t, verdict.Narrative)
		})
	}
}

func TestAnalyzeUnknownAreaUsesDefaultClasses(t *testing.T) {
	verdict := newTestAnalyzer(nil).Analyze(context.Background(), BrandQuery{BrandName: "Zyqtrix", BusinessArea: "xpto"})
	assert.Equal(t, []int{35, 41, 42}, scoring.Codes(verdict.Classes))
	assert.Equal(t, scoring.DefaultArea.Key, verdict.AreaKey)
}

func TestAnalyzeNearMatchesBecomeConflicts(t *testing.T) {
	verdict := newTestAnalyzer(nil).Analyze(context.Background(), BrandQuery{BrandName: "Nikke Esportes", BusinessArea: "moda"})
	require.False(t, verdict.Blocked)
	require.NotEmpty(t, verdict.PotentialConflicts)
	assert.Contains(t, verdict.PotentialConflicts[0], "Nike")
	assert.Contains(t, verdict.Narrative, "POSSÍVEIS CONFLITOS")
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	analyzer := newTestAnalyzer(&stubEnricher{enabled: true, err: errors.New("offline")})
	query := BrandQuery{BrandName: "Maria Doces", BusinessArea: "Alimentação"}

	first := analyzer.Analyze(context.Background(), query)
	second := analyzer.Analyze(context.Background(), query)
	assert.Equal(t, first, second)
}

type stubEnricher struct {
	enabled bool
	result  ai.Enrichment
	err     error
	block   bool
	prompt  ai.Prompt
}

func (s *stubEnricher) Enabled() bool { return s.enabled }

func (s *stubEnricher) Enrich(ctx context.Context, prompt ai.Prompt) (ai.Enrichment, error) {
	s.prompt = prompt
	if s.block {
		<-ctx.Done()
		return ai.Enrichment{}, ctx.Err()
	}
	return s.result, s.err
}

func TestAnalyzePrefersEnrichment(t *testing.T) {
	score := 88
	stub := &stubEnricher{
		enabled: true,
		result: ai.Enrichment{
			Level:                "high",
			DistinctivenessScore: &score,
			Narrative:            "O nome é criativo e não descreve o serviço.",
			Observations:         []string{"Marca inventada."},
			PotentialConflicts:   []string{"webmarket"},
			Provider:             "openai",
		},
	}

	verdict := newTestAnalyzer(stub).Analyze(context.Background(), BrandQuery{BrandName: "Zyqtrix", BusinessArea: "Tecnologia"})

	assert.True(t, verdict.Enriched)
	assert.Equal(t, "openai", verdict.Provider)
	assert.Equal(t, 88, verdict.Score)
	assert.Equal(t, []string{"Marca inventada."}, verdict.Observations)
	assert.NotEmpty(t, verdict.Recommendations)
	assert.Equal(t, []string{"webmarket"}, verdict.PotentialConflicts)
	assert.Contains(t, verdict.Narrative, "PARECER ESPECIALIZADO")
	assert.Contains(t, verdict.Narrative, "O nome é criativo")
	assert.Contains(t, verdict.Narrative, Disclaimer)

	assert.Equal(t, "zyqtrix", stub.prompt.BrandName)
	assert.Equal(t, []int{9, 42, 35}, scoring.Codes(stub.prompt.Classes))
	assert.Equal(t, 80, stub.prompt.Score)
}

func TestAnalyzeClampsEnrichedScore(t *testing.T) {
	score := 100
	stub := &stubEnricher{enabled: true, result: ai.Enrichment{Level: "bom", DistinctivenessScore: &score, Narrative: "ok"}}

	verdict := newTestAnalyzer(stub).Analyze(context.Background(), BrandQuery{BrandName: "Zyqtrix"})
	assert.Equal(t, 95, verdict.Score)
	assert.Equal(t, scoring.LevelHigh, verdict.Level)
}

func TestAnalyzeFallsBackOnEnrichmentFailure(t *testing.T) {
	query := BrandQuery{BrandName: "WebMarcas", BusinessArea: "Tecnologia"}
	baseline := newTestAnalyzer(nil).Analyze(context.Background(), query)

	tests := []struct {
		name     string
		enricher *stubEnricher
	}{
		{"error", &stubEnricher{enabled: true, err: errors.New("malformed json")}},
		{"timeout", &stubEnricher{enabled: true, block: true}},
		{"empty narrative", &stubEnricher{enabled: true, result: ai.Enrichment{Narrative: "  "}}},
		{"disabled", &stubEnricher{enabled: false}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verdict := newTestAnalyzer(tc.enricher).Analyze(context.Background(), query)
			assert.Equal(t, baseline, verdict)
		})
	}
}
