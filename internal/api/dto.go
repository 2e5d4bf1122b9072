package api

import (
	"time"

	"webmarcas/backend/internal/contract"
	"webmarcas/backend/internal/scoring"
	"webmarcas/backend/internal/store"
	"webmarcas/backend/internal/viability"
)

// ViabilityRequest is the body of POST /api/viability.
type ViabilityRequest struct {
	BrandName    string `json:"brandName"`
	BusinessArea string `json:"businessArea"`
}

// AnalysisDetailsDTO bundles the findings of a verdict.
type AnalysisDetailsDTO struct {
	Distinctiveness    int      `json:"distinctiveness"`
	Observations       []string `json:"observations"`
	Risks              []string `json:"risks"`
	Recommendations    []string `json:"recommendations"`
	PotentialConflicts []string `json:"potentialConflicts"`
}

// ViabilityResponse is the API representation of a verdict. Level and
// matchedFamousMark are null when they do not apply.
type ViabilityResponse struct {
	Success           bool               `json:"success"`
	ID                string             `json:"id,omitempty"`
	BrandName         string             `json:"brandName"`
	BusinessArea      string             `json:"businessArea"`
	IsFamousBrand     bool               `json:"isFamousBrand"`
	MatchedFamousMark *string            `json:"matchedFamousMark"`
	Level             *string            `json:"level"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Laudo             string             `json:"laudo"`
	Classes           []int              `json:"classes"`
	ClassDescriptions []string           `json:"classDescriptions"`
	AnalysisDetails   AnalysisDetailsDTO `json:"analysisDetails"`
	Enriched          bool               `json:"enriched"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// ViabilityListResponse is a page of stored analyses.
type ViabilityListResponse struct {
	Items []ViabilityResponse `json:"items"`
	Total int64               `json:"total"`
}

// ViabilityFromVerdict converts an analyzer verdict.
func ViabilityFromVerdict(v viability.Verdict, id string) ViabilityResponse {
	resp := ViabilityResponse{
		Success:           true,
		ID:                id,
		BrandName:         v.BrandName,
		BusinessArea:      v.BusinessArea,
		IsFamousBrand:     v.Blocked,
		Title:             v.Title(),
		Description:       v.Description(),
		Laudo:             v.Narrative,
		Classes:           nonNilInts(scoring.Codes(v.Classes)),
		ClassDescriptions: nonNil(scoring.Descriptions(v.Classes)),
		AnalysisDetails: AnalysisDetailsDTO{
			Distinctiveness:    v.Score,
			Observations:       nonNil(v.Observations),
			Risks:              nonNil(v.Risks),
			Recommendations:    nonNil(v.Recommendations),
			PotentialConflicts: nonNil(v.PotentialConflicts),
		},
		Enriched:  v.Enriched,
		CreatedAt: v.CreatedAt,
	}
	if v.Blocked {
		mark := v.MatchedFamousMark
		resp.MatchedFamousMark = &mark
	} else {
		level := string(v.Level)
		resp.Level = &level
	}
	return resp
}

// ViabilityFromModel converts a stored analysis.
func ViabilityFromModel(a store.Analysis) ViabilityResponse {
	details := a.Details()
	classes := make([]scoring.Class, 0, len(a.Classes()))
	for _, c := range a.Classes() {
		classes = append(classes, scoring.Class{Code: c.Code, Description: c.Description})
	}
	v := viability.Verdict{
		BrandName:          a.BrandName,
		BusinessArea:       a.BusinessArea,
		Blocked:            a.Blocked,
		Level:              scoring.Level(a.Level),
		Score:              a.Score,
		MatchedFamousMark:  a.MatchedFamousMark,
		AreaKey:            a.AreaKey,
		Classes:            classes,
		Narrative:          a.Laudo,
		Observations:       details.Observations,
		Risks:              details.Risks,
		Recommendations:    details.Recommendations,
		PotentialConflicts: details.PotentialConflicts,
		Enriched:           a.Enriched,
		Provider:           a.Provider,
		CreatedAt:          a.CreatedAt,
	}
	return ViabilityFromVerdict(v, a.ID)
}

// AnalysisFromVerdict builds the row persisted for a verdict.
func AnalysisFromVerdict(v viability.Verdict) *store.Analysis {
	a := &store.Analysis{
		BrandName:         v.BrandName,
		BusinessArea:      v.BusinessArea,
		AreaKey:           v.AreaKey,
		Blocked:           v.Blocked,
		Level:             string(v.Level),
		Score:             v.Score,
		MatchedFamousMark: v.MatchedFamousMark,
		Laudo:             v.Narrative,
		Enriched:          v.Enriched,
		Provider:          v.Provider,
		CreatedAt:         v.CreatedAt,
	}
	classes := make([]store.AnalysisClass, 0, len(v.Classes))
	for _, c := range v.Classes {
		classes = append(classes, store.AnalysisClass{Code: c.Code, Description: c.Description})
	}
	a.SetClasses(classes)
	a.SetDetails(store.AnalysisDetails{
		Observations:       v.Observations,
		Risks:              v.Risks,
		Recommendations:    v.Recommendations,
		PotentialConflicts: v.PotentialConflicts,
	})
	return a
}

// TemplateRequest is the body of template create and update calls.
type TemplateRequest struct {
	Name      string `json:"name"`
	Body      string `json:"body"`
	IsDefault bool   `json:"isDefault"`
}

// TemplateDTO is the API representation of a contract template.
type TemplateDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Body          string    `json:"body"`
	IsDefault     bool      `json:"isDefault"`
	Placeholders  []string  `json:"placeholders"`
	UnknownTokens []string  `json:"unknownTokens"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TemplateFromModel converts a stored template.
func TemplateFromModel(t store.ContractTemplate) TemplateDTO {
	return TemplateDTO{
		ID:            t.ID,
		Name:          t.Name,
		Body:          t.Body,
		IsDefault:     t.IsDefault,
		Placeholders:  nonNil(contract.Placeholders(t.Body)),
		UnknownTokens: nonNil(contract.Unknown(t.Body)),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// PlaceholdersResponse describes the tokens of a template.
type PlaceholdersResponse struct {
	Placeholders []string `json:"placeholders"`
	Unknown      []string `json:"unknown"`
	Available    []string `json:"available"`
}

// RenderContractRequest is the body of POST /api/contracts/render. An inline template
// wins over templateId; with neither, the default template is used.
type RenderContractRequest struct {
	TemplateID *uint            `json:"templateId"`
	Template   string           `json:"template"`
	Context    contract.Context `json:"context"`
	Format     string           `json:"format"`
	Certify    bool             `json:"certify"`
}

// ContractDTO is the API representation of a rendered contract.
type ContractDTO struct {
	ID            string    `json:"id"`
	TemplateID    *uint     `json:"templateId"`
	ClientName    string    `json:"clientName"`
	BrandName     string    `json:"brandName"`
	PaymentMethod string    `json:"paymentMethod"`
	Body          string    `json:"body"`
	HTML          string    `json:"html,omitempty"`
	BodyHash      string    `json:"bodyHash,omitempty"`
	UnknownTokens []string  `json:"unknownTokens"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ContractFromModel converts a stored contract.
func ContractFromModel(c store.Contract) ContractDTO {
	return ContractDTO{
		ID:            c.ID,
		TemplateID:    c.TemplateID,
		ClientName:    c.ClientName,
		BrandName:     c.BrandName,
		PaymentMethod: c.PaymentMethod,
		Body:          c.Body,
		HTML:          c.HTML,
		BodyHash:      c.BodyHash,
		UnknownTokens: nonNil(contract.Placeholders(c.Body)),
		CreatedAt:     c.CreatedAt,
	}
}

// FamousMarkDTO is a famous mark entry.
type FamousMarkDTO struct {
	Mark       string `json:"mark"`
	Sector     string `json:"sector"`
	Normalized string `json:"normalized"`
	Custom     bool   `json:"custom"`
}

// FamousMarksRequest replaces the admin-supplied famous marks.
type FamousMarksRequest struct {
	Items []FamousMarkDTO `json:"items"`
}

// FamousMarksResponse lists every indexed famous mark.
type FamousMarksResponse struct {
	Items []FamousMarkDTO `json:"items"`
	Total int             `json:"total"`
}

// PriceDTO is one tier of the price table.
type PriceDTO struct {
	Method       string `json:"method"`
	Label        string `json:"label"`
	Installments int    `json:"installments"`
	Installment  string `json:"installment"`
	Total        string `json:"total"`
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilInts(in []int) []int {
	if in == nil {
		return []int{}
	}
	return in
}
