package ai

import (
	"strings"

	"webmarcas/backend/internal/scoring"
)

// Enrichment captures the structured response expected from the text-generation
// collaborator.
type Enrichment struct {
	Level                string   `json:"level"`
	DistinctivenessScore *int     `json:"distinctiveness_score,omitempty"`
	Narrative            string   `json:"narrative"`
	Observations         []string `json:"observations"`
	Risks                []string `json:"risks"`
	Recommendations      []string `json:"recommendations"`
	PotentialConflicts   []string `json:"potential_conflicts"`
	Provider             string   `json:"-"`
}

// Prompt describes the signals sent to the collaborator.
type Prompt struct {
	BrandName     string
	BusinessArea  string
	AreaLabel     string
	Classes       []scoring.Class
	Score         int
	Level         scoring.Level
	GenericWords  []string
	PersonalNames []string
	NearMatches   []string
	Observations  []string
	Risks         []string
}

// Sanitize bounds the score to the rule range and derives a missing or unknown level
// from the score.
func Sanitize(e *Enrichment, rules scoring.Rules) {
	if e == nil {
		return
	}
	e.Narrative = strings.TrimSpace(e.Narrative)
	e.Level = strings.ToLower(strings.TrimSpace(e.Level))
	if e.DistinctivenessScore != nil {
		val := scoring.ClampScore(*e.DistinctivenessScore, rules)
		e.DistinctivenessScore = &val
	}
	if !scoring.Level(e.Level).Valid() {
		e.Level = ""
		if e.DistinctivenessScore != nil {
			e.Level = string(scoring.LevelFor(*e.DistinctivenessScore, rules))
		}
	}
	e.Observations = compactStrings(e.Observations)
	e.Risks = compactStrings(e.Risks)
	e.Recommendations = compactStrings(e.Recommendations)
	e.PotentialConflicts = compactStrings(e.PotentialConflicts)
}

func compactStrings(in []string) []string {
	var out []string
	for _, item := range in {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
