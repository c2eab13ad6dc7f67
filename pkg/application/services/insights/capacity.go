package insights

import (
	"errors"
	"fmt"
	"time"

	"github.com/vsinha/planboard/pkg/application/dto"
)

// CapacityCategory classifies a work center by utilization
type CapacityCategory string

const (
	CategoryBottleneck CapacityCategory = "bottleneck"
	CategoryHigh       CapacityCategory = "high"
	CategoryBalanced   CapacityCategory = "balanced"
	CategoryIdle       CapacityCategory = "idle"
)

const (
	BottleneckUtilPct = 115.0
	HighUtilPct       = 100.0
	IdleUtilPct       = 70.0
	EscalationScore   = 80.0
)

// ErrNoCapacityData is returned when no work center utilization is available
var ErrNoCapacityData = errors.New("no work center utilization data available")

// ClassifyResource returns the capacity category of a work center and a short
// recommendation. High scores on loaded resources escalate the recommendation.
func ClassifyResource(utilization, score float64) (CapacityCategory, string) {
	var category CapacityCategory
	var message string

	switch {
	case utilization >= BottleneckUtilPct:
		category = CategoryBottleneck
		message = "Consider an extra shift, move orders to alternative work centers or review the declared capacity."
	case utilization >= HighUtilPct:
		category = CategoryHigh
		message = "Keep this resource in focus in short-term meetings, adjusting sequence and order priority."
	case utilization <= IdleUtilPct:
		category = CategoryIdle
		message = "Look for product mix that could move to this resource or reduce declared capacity to save cost."
	default:
		category = CategoryBalanced
		message = "Resource in a healthy range. Keep monitoring and use it as a reference for balancing other centers."
	}

	if score >= EscalationScore && (category == CategoryBottleneck || category == CategoryHigh) {
		message += " Prioritize a detailed review of this center in the next meeting."
	}

	return category, message
}

// CapacityReport classifies the top resources and derives general
// recommendations from the utilization buckets
func CapacityReport(kpis *dto.ResourceKPIs, generatedAt time.Time) (*dto.CapacityReport, error) {
	if kpis == nil || kpis.Summary == nil {
		return nil, ErrNoCapacityData
	}

	report := &dto.CapacityReport{
		GeneratedAt:     generatedAt,
		Summary:         kpis.Summary,
		Insights:        make([]dto.CapacityInsight, 0, len(kpis.Top)),
		Recommendations: make([]string, 0, 3),
	}

	for _, r := range kpis.Top {
		category, message := ClassifyResource(r.Utilization, r.Score)
		report.Insights = append(report.Insights, dto.CapacityInsight{
			Resource:    r.Resource,
			Plant:       r.Plant,
			Utilization: r.Utilization,
			Score:       r.Score,
			Category:    string(category),
			Message:     message,
		})
	}

	s := kpis.Summary
	if s.Above100 > 0 {
		report.Recommendations = append(report.Recommendations, fmt.Sprintf(
			"%d resource(s) above 100%% utilization. Redistribute load, use alternative centers, "+
				"add temporary shifts or adjust calendars.", s.Above100))
	}
	if s.Between90And100 > 0 {
		report.Recommendations = append(report.Recommendations, fmt.Sprintf(
			"%d resource(s) between 90%% and 100%% utilization. Keep them in focus in the weekly capacity review.",
			s.Between90And100))
	}
	if s.Below90 > 0 {
		report.Recommendations = append(report.Recommendations, fmt.Sprintf(
			"%d resource(s) below 90%% utilization. Look for mix rebalancing or consolidation opportunities.",
			s.Below90))
	}
	if len(report.Recommendations) == 0 {
		report.Recommendations = append(report.Recommendations,
			"Overall capacity is balanced with no relevant bottleneck. Keep the weekly monitoring routine.")
	}

	return report, nil
}
