package dto

import (
	"time"

	"github.com/vsinha/planboard/pkg/domain/entities"
)

// ScoredMaterial is a material with its coverage and criticality score
type ScoredMaterial struct {
	Material     entities.MaterialID `json:"material"`
	CoverageDays float64             `json:"coverage_days"`
	Score        float64             `json:"score"`
}

// MaterialKPIs contains the coverage risk buckets of the material extract
type MaterialKPIs struct {
	Total           int              `json:"total"`
	AtRisk          int              `json:"at_risk"`
	AtRiskPct       float64          `json:"at_risk_pct"`
	Excess          int              `json:"excess"`
	ExcessPct       float64          `json:"excess_pct"`
	Normal          int              `json:"normal"`
	Dropped         int              `json:"dropped"`
	HighCriticality int              `json:"high_criticality"`
	Top             []ScoredMaterial `json:"top"`
}

// ScoredOrder is a production order with its delay and criticality score
type ScoredOrder struct {
	Order     entities.OrderID    `json:"order"`
	Material  entities.MaterialID `json:"material"`
	DueDate   time.Time           `json:"due_date"`
	Status    string              `json:"status"`
	DelayDays int                 `json:"delay_days"`
	Score     float64             `json:"score"`
}

// OrderKPIs contains the lateness figures of the production order extract
type OrderKPIs struct {
	Total           int           `json:"total"`
	Late            int           `json:"late"`
	LatePct         float64       `json:"late_pct"`
	Dropped         int           `json:"dropped"`
	HighCriticality int           `json:"high_criticality"`
	Top             []ScoredOrder `json:"top"`
}

// ScoredResource is a work center with its utilization and criticality score
type ScoredResource struct {
	Resource    entities.ResourceID `json:"resource"`
	Plant       string              `json:"plant,omitempty"`
	Utilization float64             `json:"utilization"`
	Score       float64             `json:"score"`
}

// ResourceSummary buckets work centers by utilization
type ResourceSummary struct {
	Total           int      `json:"total"`
	Below90         int      `json:"below_90"`
	Between90And100 int      `json:"between_90_100"`
	Above100        int      `json:"above_100"`
	MeanUtilization *float64 `json:"mean_utilization"`
}

// ResourceKPIs has a nil Summary when no utilization data is available.
// Dropped counts rows whose utilization could not be read.
type ResourceKPIs struct {
	Summary *ResourceSummary `json:"summary"`
	Top     []ScoredResource `json:"top"`
	Dropped int              `json:"dropped"`
}

// BlockError reports a dashboard block that could not be computed
type BlockError struct {
	Block   string `json:"block"`
	Message string `json:"message"`
}

// DashboardSummary combines the KPI blocks of the latest snapshots
type DashboardSummary struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Materials   *MaterialKPIs `json:"materials"`
	Orders      *OrderKPIs    `json:"orders"`
	Resources   *ResourceKPIs `json:"resources"`
	Warnings    []BlockError  `json:"warnings,omitempty"`
}

// InsightsReport wraps the generated dashboard insights
type InsightsReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Insights    []entities.Insight `json:"insights"`
}

// CapacityInsight classifies one work center
type CapacityInsight struct {
	Resource    entities.ResourceID `json:"resource"`
	Plant       string              `json:"plant,omitempty"`
	Utilization float64             `json:"utilization"`
	Score       float64             `json:"score"`
	Category    string              `json:"category"`
	Message     string              `json:"message"`
}

// CapacityReport is the capacity view of the work center extract
type CapacityReport struct {
	GeneratedAt     time.Time         `json:"generated_at"`
	Summary         *ResourceSummary  `json:"summary"`
	Insights        []CapacityInsight `json:"insights"`
	Recommendations []string          `json:"recommendations"`
}
