package viability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"webmarcas/backend/internal/ai"
	"webmarcas/backend/internal/match"
	"webmarcas/backend/internal/metrics"
	"webmarcas/backend/internal/scoring"
	"webmarcas/backend/internal/util"
)

const (
	defaultTimeout            = 20 * time.Second
	defaultNearMatchThreshold = 0.75
)

// BrandQuery is the analyzer input.
type BrandQuery struct {
	BrandName    string
	BusinessArea string
}

// Verdict is the outcome of a viability analysis. Level and Classes are empty when the
// brand is blocked.
type Verdict struct {
	BrandName          string
	BusinessArea       string
	Blocked            bool
	Level              scoring.Level
	Score              int
	MatchedFamousMark  string
	FamousSector       string
	AreaKey            string
	AreaLabel          string
	Classes            []scoring.Class
	Narrative          string
	Observations       []string
	Risks              []string
	Recommendations    []string
	PotentialConflicts []string
	Enriched           bool
	Provider           string
	CreatedAt          time.Time
}

// Options configures an Analyzer.
type Options struct {
	Famous             *scoring.FamousIndex
	Rules              scoring.Rules
	Enricher           ai.Enricher
	Timeout            time.Duration
	NearMatchThreshold float64
	Now                func() time.Time
}

// Analyzer decides whether a brand name is blocked by a famous mark and, if not, how
// distinctive it is. It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	famous    *scoring.FamousIndex
	rules     scoring.Rules
	enricher  ai.Enricher
	timeout   time.Duration
	threshold float64
	now       func() time.Time
}

// NewAnalyzer builds an Analyzer, filling unset options with defaults.
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Famous == nil {
		opts.Famous = scoring.NewFamousIndex(nil)
	}
	if opts.Rules == (scoring.Rules{}) {
		opts.Rules = scoring.DefaultRules()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.NearMatchThreshold <= 0 {
		opts.NearMatchThreshold = defaultNearMatchThreshold
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Analyzer{
		famous:    opts.Famous,
		rules:     opts.Rules,
		enricher:  opts.Enricher,
		timeout:   opts.Timeout,
		threshold: opts.NearMatchThreshold,
		now:       opts.Now,
	}
}

// Rules returns the scoring constants in use.
func (a *Analyzer) Rules() scoring.Rules {
	return a.rules
}

// EnrichmentEnabled reports whether a text-generation collaborator is configured.
func (a *Analyzer) EnrichmentEnabled() bool {
	return a.enricher != nil && a.enricher.Enabled()
}

// Analyze produces the verdict for a query. It never fails: enrichment problems degrade
// to the deterministic result.
func (a *Analyzer) Analyze(ctx context.Context, q BrandQuery) Verdict {
	timer := util.StartTimer()
	profile := match.NormalizeBrand(q.BrandName)

	verdict := Verdict{
		BrandName:    strings.TrimSpace(q.BrandName),
		BusinessArea: strings.TrimSpace(q.BusinessArea),
		CreatedAt:    a.now(),
	}

	if mark, ok := a.famous.Match(profile); ok {
		a.block(&verdict, mark)
		metrics.ViabilityAnalyses.WithLabelValues("blocked").Inc()
		metrics.ViabilityDuration.Observe(timer.Elapsed().Seconds())
		logrus.WithFields(logrus.Fields{
			"brand":        verdict.BrandName,
			"famous_mark":  mark.Mark,
			"famous_group": mark.Sector,
		}).Info("viability blocked by famous mark")
		return verdict
	}

	area, matched := scoring.ClassesFor(q.BusinessArea)
	verdict.AreaKey = area.Key
	verdict.AreaLabel = area.Label
	verdict.Classes = append([]scoring.Class(nil), area.Classes...)

	result := scoring.Score(profile, a.rules)
	verdict.Score = result.Score
	verdict.Level = result.Level
	verdict.Observations = result.Observations
	verdict.Risks = result.Risks
	verdict.Recommendations = result.Recommendations
	if !matched && verdict.BusinessArea != "" {
		verdict.Observations = append(verdict.Observations,
			"O ramo informado não corresponde a um segmento conhecido; foram sugeridas classes de atividade geral.")
	}

	near := a.famous.NearMatches(profile, a.threshold)
	nearNames := make([]string, 0, len(near))
	for _, n := range near {
		nearNames = append(nearNames, n.Mark.Mark)
		verdict.PotentialConflicts = append(verdict.PotentialConflicts,
			fmt.Sprintf("Grafia semelhante à marca de alto renome %s (%.0f%% de similaridade).", n.Mark.Mark, n.Similarity*100))
	}

	var enrichment *ai.Enrichment
	if e, ok := a.enrich(ctx, profile, verdict, result, nearNames); ok {
		a.apply(&verdict, e)
		enrichment = &e
	}

	verdict.Narrative = buildLaudo(verdict, enrichment)

	metrics.ViabilityAnalyses.WithLabelValues(string(verdict.Level)).Inc()
	metrics.ViabilityDuration.Observe(timer.Elapsed().Seconds())
	logrus.WithFields(logrus.Fields{
		"brand":       verdict.BrandName,
		"area":        verdict.AreaKey,
		"score":       verdict.Score,
		"level":       verdict.Level,
		"enriched":    verdict.Enriched,
		"duration_ms": timer.ElapsedMs(),
	}).Debug("viability analysis complete")
	return verdict
}

func (a *Analyzer) block(verdict *Verdict, mark scoring.FamousMark) {
	verdict.Blocked = true
	verdict.MatchedFamousMark = mark.Normalized
	verdict.FamousSector = mark.Sector
	verdict.Observations = []string{
		fmt.Sprintf("O nome coincide com a marca de alto renome %s (%s).", mark.Mark, mark.Sector),
	}
	verdict.Risks = blockedConsequences()
	verdict.Recommendations = []string{blockedRecommendation}
	verdict.Narrative = buildBlockedLaudo(*verdict, mark)
}

func (a *Analyzer) enrich(ctx context.Context, profile match.BrandProfile, verdict Verdict, result scoring.Distinctiveness, nearNames []string) (ai.Enrichment, bool) {
	if !a.EnrichmentEnabled() {
		metrics.ViabilityEnrichment.WithLabelValues(metrics.EnrichmentDisabled).Inc()
		return ai.Enrichment{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := ai.Prompt{
		BrandName:     profile.Normalized,
		BusinessArea:  match.Normalize(verdict.BusinessArea),
		AreaLabel:     verdict.AreaLabel,
		Classes:       verdict.Classes,
		Score:         result.Score,
		Level:         result.Level,
		GenericWords:  result.GenericWords,
		PersonalNames: result.PersonalNames,
		NearMatches:   nearNames,
		Observations:  result.Observations,
		Risks:         result.Risks,
	}

	enrichment, err := a.enricher.Enrich(ctx, prompt)
	if err != nil {
		metrics.ViabilityEnrichment.WithLabelValues(metrics.EnrichmentFailed).Inc()
		logrus.WithError(err).WithField("brand", verdict.BrandName).Warn("enrichment unavailable; falling back to heuristic verdict")
		return ai.Enrichment{}, false
	}
	ai.Sanitize(&enrichment, a.rules)
	if enrichment.Narrative == "" {
		metrics.ViabilityEnrichment.WithLabelValues(metrics.EnrichmentFailed).Inc()
		return ai.Enrichment{}, false
	}
	metrics.ViabilityEnrichment.WithLabelValues(metrics.EnrichmentApplied).Inc()
	return enrichment, true
}

// apply prefers the enrichment values, keeping deterministic lists the collaborator left
// empty. Potential conflicts are merged since near matches come from the famous table.
func (a *Analyzer) apply(verdict *Verdict, e ai.Enrichment) {
	verdict.Enriched = true
	verdict.Provider = e.Provider
	if e.DistinctivenessScore != nil {
		verdict.Score = *e.DistinctivenessScore
	}
	if level := scoring.Level(e.Level); level.Valid() {
		verdict.Level = level
	} else if e.DistinctivenessScore != nil {
		verdict.Level = scoring.LevelFor(verdict.Score, a.rules)
	}
	if len(e.Observations) > 0 {
		verdict.Observations = e.Observations
	}
	if len(e.Risks) > 0 {
		verdict.Risks = e.Risks
	}
	if len(e.Recommendations) > 0 {
		verdict.Recommendations = e.Recommendations
	}
	verdict.PotentialConflicts = mergeUnique(verdict.PotentialConflicts, e.PotentialConflicts)
}

// Title is the short headline shown with the verdict.
func (v Verdict) Title() string {
	if v.Blocked {
		return "Marca de alto renome identificada"
	}
	switch v.Level {
	case scoring.LevelHigh:
		return "Alta viabilidade de registro"
	case scoring.LevelMedium:
		return "Viabilidade moderada de registro"
	default:
		return "Baixa viabilidade de registro"
	}
}

// Description summarizes the verdict in one sentence.
func (v Verdict) Description() string {
	if v.Blocked {
		return fmt.Sprintf("O nome \"%s\" conflita com a marca de alto renome \"%s\", protegida em todos os ramos de atividade. O registro não é possível.", v.BrandName, v.MatchedFamousMark)
	}
	switch v.Level {
	case scoring.LevelHigh:
		return fmt.Sprintf("O nome \"%s\" apresenta boa distintividade e tem alta chance de registro nas classes recomendadas.", v.BrandName)
	case scoring.LevelMedium:
		return fmt.Sprintf("O nome \"%s\" pode ser registrado, mas apresenta pontos de atenção que reduzem sua distintividade.", v.BrandName)
	default:
		return fmt.Sprintf("O nome \"%s\" apresenta baixa distintividade e risco elevado de indeferimento.", v.BrandName)
	}
}

func mergeUnique(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	var out []string
	for _, list := range [][]string{base, extra} {
		for _, item := range list {
			key := match.Normalize(item)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// FamousMarks lists the marks the analyzer blocks on, in lookup order.
func (a *Analyzer) FamousMarks() []scoring.FamousMark {
	return a.famous.Marks()
}
