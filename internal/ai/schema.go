package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var enrichmentSchema = gojsonschema.NewGoLoader(map[string]any{
	"type":     "object",
	"required": []string{"narrative"},
	"properties": map[string]any{
		"level":                 map[string]any{"type": "string"},
		"distinctiveness_score": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"narrative":             map[string]any{"type": "string", "minLength": 1},
		"observations":          stringList,
		"risks":                 stringList,
		"recommendations":       stringList,
		"potential_conflicts":   stringList,
	},
})

// ErrEmptyResponse is returned when the collaborator answered without content.
var ErrEmptyResponse = errors.New("ai empty response")

// ParseEnrichment extracts the JSON object from a model reply, validates it against
// the enrichment schema and decodes it.
func ParseEnrichment(content string) (Enrichment, error) {
	block := normalizeJSONBlock(content)
	if block == "" {
		return Enrichment{}, ErrEmptyResponse
	}

	result, err := gojsonschema.Validate(enrichmentSchema, gojsonschema.NewStringLoader(block))
	if err != nil {
		return Enrichment{}, fmt.Errorf("parse ai response: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return Enrichment{}, fmt.Errorf("ai response failed validation: %s", strings.Join(errs, "; "))
	}

	var enrichment Enrichment
	if err := json.Unmarshal([]byte(block), &enrichment); err != nil {
		return Enrichment{}, fmt.Errorf("decode ai response: %w", err)
	}
	enrichment.Narrative = strings.TrimSpace(enrichment.Narrative)
	if enrichment.Narrative == "" {
		return Enrichment{}, errors.New("ai narrative missing")
	}
	return enrichment, nil
}

func normalizeJSONBlock(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.IndexRune(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		if strings.HasSuffix(trimmed, "```") {
			trimmed = trimmed[:len(trimmed)-3]
		}
	}
	trimmed = strings.TrimSpace(trimmed)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end >= start {
		return strings.TrimSpace(trimmed[start : end+1])
	}
	return trimmed
}
