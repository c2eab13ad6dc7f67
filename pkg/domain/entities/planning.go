package entities

import (
	"encoding/json"
	"fmt"
)

// WeekSlot is one week of a planning board projection
type WeekSlot struct {
	Index                 int     `json:"index"`
	Label                 string  `json:"label"`
	Demand                float64 `json:"demand"`
	ExistingProduction    float64 `json:"existing_production"`
	CorrectiveProduction  float64 `json:"corrective_production"`
	NaturalStock          float64 `json:"natural_stock"`
	PostInterventionStock float64 `json:"post_intervention_stock"`
}

// WeekLabel returns the display label of the 1-based week index
func WeekLabel(index int) string {
	return fmt.Sprintf("W+%d", index)
}

// Severity ranks recommendations and insights
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

// String method for Severity enum
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Recommendation categories of the planning board
const (
	CategoryProduction    = "production"
	CategoryPlanning      = "planning"
	CategoryFollowUp      = "follow-up"
	CategoryInformational = "informational"
)

// Recommendation is an action suggested by the planning board
type Recommendation struct {
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
}

// Insight areas of the dashboard
const (
	AreaMaterial = "material"
	AreaOrder    = "order"
	AreaResource = "resource"
	AreaSystem   = "system"
)

// Insight is an advisory record derived from dashboard KPIs
type Insight struct {
	Title      string   `json:"title"`
	Detail     string   `json:"detail"`
	Suggestion string   `json:"suggestion"`
	Severity   Severity `json:"severity"`
	Area       string   `json:"area"`
}
