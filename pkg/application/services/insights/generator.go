// Package insights turns dashboard KPIs into advisory records for planners.
package insights

import (
	"fmt"

	"github.com/vsinha/planboard/pkg/application/dto"
	"github.com/vsinha/planboard/pkg/domain/entities"
)

// Severity thresholds of the insight rules
const (
	AtRiskHighPct   = 2.0
	ExcessMediumPct = 10.0
	LateHighPct     = 5.0
	MeanUtilLowPct  = 85.0
	MeanUtilHighPct = 95.0
)

// Generate evaluates the insight rule table against a dashboard summary.
// Rules are independent; a single informational insight is returned when
// none of them fires.
func Generate(summary *dto.DashboardSummary) []entities.Insight {
	out := make([]entities.Insight, 0)
	if summary == nil {
		return append(out, allClear())
	}

	if m := summary.Materials; m != nil {
		out = append(out, materialInsights(m)...)
	}
	if o := summary.Orders; o != nil {
		out = append(out, orderInsights(o)...)
	}
	if r := summary.Resources; r != nil {
		out = append(out, resourceInsights(r)...)
	}

	if len(out) == 0 {
		out = append(out, allClear())
	}
	return out
}

func materialInsights(m *dto.MaterialKPIs) []entities.Insight {
	var out []entities.Insight

	if m.AtRisk > 0 {
		severity := entities.SeverityMedium
		if m.AtRiskPct >= AtRiskHighPct {
			severity = entities.SeverityHigh
		}
		out = append(out, entities.Insight{
			Title:      "Materials at stock-out risk",
			Detail:     fmt.Sprintf("%d of %d monitored materials have less than 7 days of coverage.", m.AtRisk, m.Total),
			Suggestion: "Prioritize these items in the MRP meeting, review safety stock parameters and check supplier delays.",
			Severity:   severity,
			Area:       entities.AreaMaterial,
		})
	}

	if m.Excess > 0 {
		severity := entities.SeverityLow
		if m.ExcessPct >= ExcessMediumPct {
			severity = entities.SeverityMedium
		}
		out = append(out, entities.Insight{
			Title:      "Materials with excess stock",
			Detail:     fmt.Sprintf("%d materials have more than 45 days of coverage, tying up working capital.", m.Excess),
			Suggestion: "Review the replenishment policy and minimum lot sizes, and consider reducing future purchases.",
			Severity:   severity,
			Area:       entities.AreaMaterial,
		})
	}

	if m.Dropped > 0 {
		out = append(out, entities.Insight{
			Title:      "Materials without computed coverage",
			Detail:     fmt.Sprintf("%d materials appear in the coverage extract without a valid coverage value.", m.Dropped),
			Suggestion: "Check MRP settings and material master data before the next analysis.",
			Severity:   entities.SeverityMedium,
			Area:       entities.AreaSystem,
		})
	}

	return out
}

func orderInsights(o *dto.OrderKPIs) []entities.Insight {
	var out []entities.Insight

	if o.Late > 0 {
		severity := entities.SeverityMedium
		if o.LatePct >= LateHighPct {
			severity = entities.SeverityHigh
		}
		out = append(out, entities.Insight{
			Title:      "Late production orders",
			Detail:     fmt.Sprintf("%d of %d orders are late (%.2f%% of the portfolio).", o.Late, o.Total, o.LatePct),
			Suggestion: "Re-prioritize the production queue and review capacity constraints, extra shifts or resource reallocation.",
			Severity:   severity,
			Area:       entities.AreaOrder,
		})
	}

	if len(o.Top) > 0 {
		out = append(out, entities.Insight{
			Title:      "Top critical orders by delay",
			Detail:     fmt.Sprintf("The %d most critical orders combine the longest delays with the most critical materials.", len(o.Top)),
			Suggestion: "Review these orders in the daily planning meeting, focusing on material release and sequencing.",
			Severity:   entities.SeverityHigh,
			Area:       entities.AreaOrder,
		})
	}

	return out
}

func resourceInsights(r *dto.ResourceKPIs) []entities.Insight {
	var out []entities.Insight

	if s := r.Summary; s != nil {
		if s.Above100 > 0 {
			out = append(out, entities.Insight{
				Title:      "Overloaded resources",
				Detail:     fmt.Sprintf("%d of %d resources are above 100%% of declared capacity.", s.Above100, s.Total),
				Suggestion: "Redistribute load to alternative work centers, change routings or add temporary capacity.",
				Severity:   entities.SeverityHigh,
				Area:       entities.AreaResource,
			})
		}

		if s.MeanUtilization != nil && *s.MeanUtilization > 0 {
			mean := *s.MeanUtilization
			severity := entities.SeverityInfo
			if mean >= MeanUtilLowPct && mean <= MeanUtilHighPct {
				severity = entities.SeverityMedium
			}
			out = append(out, entities.Insight{
				Title:      "Capacity utilization overview",
				Detail:     fmt.Sprintf("Mean resource utilization is %.1f%%.", mean),
				Suggestion: "Use this as the reference for balancing demand and capacity in the coming weeks.",
				Severity:   severity,
				Area:       entities.AreaResource,
			})
		}
	}

	if len(r.Top) > 0 {
		top := r.Top[0]
		plant := top.Plant
		if plant == "" {
			plant = "-"
		}
		out = append(out, entities.Insight{
			Title:      fmt.Sprintf("Bottleneck resource: %s", top.Resource),
			Detail:     fmt.Sprintf("Resource %s in plant %s is at %.1f%% utilization.", top.Resource, plant, top.Utilization),
			Suggestion: "Check the order queue on this resource and consider alternative work centers or resequencing.",
			Severity:   entities.SeverityHigh,
			Area:       entities.AreaResource,
		})
	}

	return out
}

func allClear() entities.Insight {
	return entities.Insight{
		Title:      "No critical alert identified",
		Detail:     "Material, order and resource indicators are within their limits.",
		Suggestion: "Keep daily monitoring and adjust MRP and capacity parameters as needed.",
		Severity:   entities.SeverityInfo,
		Area:       entities.AreaSystem,
	}
}
