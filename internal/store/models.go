package store

import (
	"encoding/json"
	"strings"
	"time"
)

// Analysis is a persisted viability verdict.
type Analysis struct {
	ID                string `gorm:"primaryKey;size:36"`
	BrandName         string `gorm:"size:255"`
	BrandNormalized   string `gorm:"size:255;index"`
	BusinessArea      string `gorm:"size:255"`
	AreaKey           string `gorm:"size:64"`
	Blocked           bool   `gorm:"index"`
	Level             string `gorm:"size:16;index"`
	Score             int
	MatchedFamousMark string `gorm:"size:255"`
	ClassesJSON       string `gorm:"type:text"`
	Laudo             string `gorm:"type:text"`
	DetailsJSON       string `gorm:"type:text"`
	Enriched          bool
	Provider          string `gorm:"size:32"`
	ProcessingTimeMs  int64
	CreatedAt         time.Time `gorm:"index"`
}

// AnalysisClass is the stored form of a recommended class.
type AnalysisClass struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// AnalysisDetails bundles the finding lists of an analysis.
type AnalysisDetails struct {
	Observations       []string `json:"observations"`
	Risks              []string `json:"risks"`
	Recommendations    []string `json:"recommendations"`
	PotentialConflicts []string `json:"potentialConflicts"`
}

// SetClasses persists the class list as JSON.
func (a *Analysis) SetClasses(classes []AnalysisClass) {
	if classes == nil {
		a.ClassesJSON = "[]"
		return
	}
	payload, _ := json.Marshal(classes)
	a.ClassesJSON = string(payload)
}

// Classes returns the decoded class list.
func (a *Analysis) Classes() []AnalysisClass {
	if strings.TrimSpace(a.ClassesJSON) == "" {
		return nil
	}
	var out []AnalysisClass
	if err := json.Unmarshal([]byte(a.ClassesJSON), &out); err != nil {
		return nil
	}
	return out
}

// SetDetails persists the finding lists as JSON.
func (a *Analysis) SetDetails(details AnalysisDetails) {
	payload, _ := json.Marshal(details)
	a.DetailsJSON = string(payload)
}

// Details returns the decoded finding lists.
func (a *Analysis) Details() AnalysisDetails {
	var out AnalysisDetails
	if strings.TrimSpace(a.DetailsJSON) == "" {
		return out
	}
	_ = json.Unmarshal([]byte(a.DetailsJSON), &out)
	return out
}

// ContractTemplate is an admin-managed contract body with {{token}} placeholders.
type ContractTemplate struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;uniqueIndex"`
	Body      string `gorm:"type:text"`
	IsDefault bool   `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contract is a rendered contract kept for later retrieval and printing.
type Contract struct {
	ID            string `gorm:"primaryKey;size:36"`
	TemplateID    *uint  `gorm:"index"`
	ClientName    string `gorm:"size:255"`
	ClientEmail   string `gorm:"size:255;index"`
	BrandName     string `gorm:"size:255"`
	PaymentMethod string `gorm:"size:16"`
	Body          string `gorm:"type:text"`
	HTML          string `gorm:"type:text"`
	BodyHash      string `gorm:"size:64"`
	CreatedAt     time.Time
}

// FamousMark is an admin-supplied high-renown mark added on top of the built-in table.
type FamousMark struct {
	Normalized string `gorm:"primaryKey;size:255"`
	Mark       string `gorm:"size:255"`
	Sector     string `gorm:"size:64"`
	UpdatedAt  time.Time
}
