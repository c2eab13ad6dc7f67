// Package kpi aggregates scored snapshot rows into dashboard KPI blocks.
// Top lists are rebuilt on every call and the input slices are never
// reordered.
package kpi

import (
	"errors"
	"sort"
	"time"

	"github.com/vsinha/planboard/pkg/application/dto"
	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/services"
)

// TopN is the size of every ranked list
const TopN = 10

// ErrNoValidMaterials is returned when no material row has a usable coverage
var ErrNoValidMaterials = errors.New("no valid coverage rows in material snapshot")

// BuildMaterialScoreMap scores every material once. The first occurrence of
// a duplicated material id wins.
func BuildMaterialScoreMap(materials []*entities.Material) map[entities.MaterialID]float64 {
	scores := make(map[entities.MaterialID]float64, len(materials))
	for _, m := range materials {
		if _, seen := scores[m.ID]; seen {
			continue
		}
		scores[m.ID] = services.ScoreMaterial(m.CoverageDays)
	}
	return scores
}

// AggregateMaterials buckets materials by coverage and ranks the most
// critical ones
func AggregateMaterials(materials []*entities.Material) (*dto.MaterialKPIs, error) {
	kpis := &dto.MaterialKPIs{}
	scored := make([]dto.ScoredMaterial, 0, len(materials))

	for _, m := range materials {
		coverage, ok := m.CoverageDays.Get()
		if !ok {
			kpis.Dropped++
			continue
		}

		score := services.ScoreMaterial(m.CoverageDays)
		scored = append(scored, dto.ScoredMaterial{
			Material:     m.ID,
			CoverageDays: coverage,
			Score:        score,
		})

		switch {
		case coverage < services.CoverageAtRiskDays:
			kpis.AtRisk++
		case coverage > services.CoverageExcessDays:
			kpis.Excess++
		default:
			kpis.Normal++
		}
		if score >= services.MaterialHighCriticality {
			kpis.HighCriticality++
		}
	}

	if len(scored) == 0 {
		return nil, ErrNoValidMaterials
	}

	kpis.Total = len(scored)
	kpis.AtRiskPct = services.Percent(kpis.AtRisk, kpis.Total)
	kpis.ExcessPct = services.Percent(kpis.Excess, kpis.Total)

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].CoverageDays != scored[j].CoverageDays {
			return scored[i].CoverageDays < scored[j].CoverageDays
		}
		return scored[i].Material < scored[j].Material
	})
	kpis.Top = firstN(scored)

	return kpis, nil
}

// AggregateOrders counts late orders and ranks the most critical late ones.
// An empty extract yields an empty KPI block.
func AggregateOrders(
	orders []*entities.ProductionOrder,
	materialScores map[entities.MaterialID]float64,
	today time.Time,
) *dto.OrderKPIs {
	kpis := &dto.OrderKPIs{Top: []dto.ScoredOrder{}}
	if len(orders) == 0 {
		return kpis
	}

	late := make([]dto.ScoredOrder, 0)
	for _, o := range orders {
		due, ok := o.DueDate.Get()
		if !ok {
			kpis.Dropped++
			continue
		}
		kpis.Total++

		signal := services.SignalFor(o, materialScores, today)
		score := services.ScoreOrder(signal)
		if score >= services.OrderHighCriticality {
			kpis.HighCriticality++
		}

		if !o.IsLate(today) {
			continue
		}
		kpis.Late++
		late = append(late, dto.ScoredOrder{
			Order:     o.ID,
			Material:  o.Material,
			DueDate:   due,
			Status:    o.Status,
			DelayDays: services.OrderDelay(signal),
			Score:     score,
		})
	}

	kpis.LatePct = services.Percent(kpis.Late, kpis.Total)

	sort.Slice(late, func(i, j int) bool {
		if late[i].Score != late[j].Score {
			return late[i].Score > late[j].Score
		}
		if late[i].DelayDays != late[j].DelayDays {
			return late[i].DelayDays > late[j].DelayDays
		}
		if !late[i].DueDate.Equal(late[j].DueDate) {
			return late[i].DueDate.Before(late[j].DueDate)
		}
		return late[i].Order < late[j].Order
	})
	kpis.Top = firstN(late)

	return kpis
}

// AggregateResources buckets work centers by utilization. Without any valid
// utilization the summary is nil.
func AggregateResources(resources []*entities.Resource) *dto.ResourceKPIs {
	kpis := &dto.ResourceKPIs{Top: []dto.ScoredResource{}}

	scored := make([]dto.ScoredResource, 0, len(resources))
	summary := &dto.ResourceSummary{}
	sum := 0.0

	for _, r := range resources {
		u, ok := r.Utilization.Get()
		if !ok {
			kpis.Dropped++
			continue
		}
		scored = append(scored, dto.ScoredResource{
			Resource:    r.ID,
			Plant:       r.Plant,
			Utilization: u,
			Score:       services.ScoreResource(r.Utilization),
		})
		sum += u

		switch {
		case u < services.UtilizationHighPct:
			summary.Below90++
		case u <= services.UtilizationFullPct:
			summary.Between90And100++
		default:
			summary.Above100++
		}
	}

	if len(scored) == 0 {
		return kpis
	}

	summary.Total = len(scored)
	mean := services.Round(sum/float64(summary.Total), 1)
	summary.MeanUtilization = &mean
	kpis.Summary = summary

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Utilization != scored[j].Utilization {
			return scored[i].Utilization > scored[j].Utilization
		}
		return scored[i].Resource < scored[j].Resource
	})
	kpis.Top = firstN(scored)

	return kpis
}

func firstN[T any](items []T) []T {
	if len(items) > TopN {
		return items[:TopN]
	}
	return items
}
