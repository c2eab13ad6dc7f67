package services

import (
	"time"

	"github.com/vsinha/planboard/pkg/domain/entities"
)

// Coverage breakpoints in days. The material score bands and the KPI risk
// buckets share them.
const (
	CoverageAtRiskDays = 7.0
	CoverageTightDays  = 15.0
	CoverageExcessDays = 45.0
)

// Utilization breakpoints in percent
const (
	UtilizationLowPct  = 70.0
	UtilizationHighPct = 90.0
	UtilizationFullPct = 100.0
)

// Score thresholds above which an entity counts as highly critical
const (
	MaterialHighCriticality = 80.0
	OrderHighCriticality    = 70.0
)

const (
	MaxScore                  = 100.0
	UnknownCoverageScore      = 50.0
	orderDelayWeight          = 0.6
	orderMaterialWeight       = 0.4
	excessCoverageDecayPerDay = 0.3
)

// ScoreMaterial maps stock coverage days to a criticality score. Unknown
// coverage scores neutral.
func ScoreMaterial(coverage entities.Value[float64]) float64 {
	c, ok := coverage.Get()
	if !ok {
		return UnknownCoverageScore
	}

	var score float64
	switch {
	case c <= 0:
		score = MaxScore
	case c <= CoverageAtRiskDays:
		score = 90 + (CoverageAtRiskDays-c)*10/CoverageAtRiskDays
	case c <= CoverageTightDays:
		score = 70 + (CoverageTightDays-c)*20/(CoverageTightDays-CoverageAtRiskDays)
	case c <= CoverageExcessDays:
		score = 30 + (CoverageExcessDays-c)*40/(CoverageExcessDays-CoverageTightDays)
	default:
		score = 30 - (c-CoverageExcessDays)*excessCoverageDecayPerDay
	}

	return Round(Clamp(score, 0, MaxScore), 1)
}

// OrderSignal carries what ScoreOrder needs from a production order
type OrderSignal struct {
	Status        string
	DelayDays     entities.Value[int]
	DueDate       entities.Value[time.Time]
	MaterialScore entities.Value[float64]
	Today         time.Time
}

// SignalFor builds the scoring signal of an order, looking the material score
// up in scores when the order references a material.
func SignalFor(order *entities.ProductionOrder, scores map[entities.MaterialID]float64, today time.Time) OrderSignal {
	signal := OrderSignal{
		Status:        order.Status,
		DelayDays:     order.DelayDays,
		DueDate:       order.DueDate,
		MaterialScore: entities.Missing[float64](),
		Today:         today,
	}
	if order.Material != "" {
		if score, ok := scores[order.Material]; ok {
			signal.MaterialScore = entities.Known(score)
		}
	}
	return signal
}

// OrderDelay resolves the delay of an order signal: the explicit delay when
// present, otherwise days past the due date, never negative.
func OrderDelay(in OrderSignal) int {
	delay := 0
	if d, ok := in.DelayDays.Get(); ok {
		delay = d
	} else if due, ok := in.DueDate.Get(); ok {
		delay = entities.DaysBetween(due, in.Today)
	}
	if delay < 0 {
		return 0
	}
	return delay
}

// ScoreOrder blends order delay with the criticality of the ordered
// material. Closed orders always score zero.
func ScoreOrder(in OrderSignal) float64 {
	if entities.IsClosedStatus(in.Status) {
		return 0
	}

	delay := OrderDelay(in)

	var base float64
	switch {
	case delay <= 0:
		base = 20
	case delay <= 3:
		base = 60 + 5*float64(delay)
	case delay <= 10:
		base = 75 + 3*float64(delay-3)
	default:
		base = MaxScore
	}

	material := in.MaterialScore.OrElse(0)
	score := base*orderDelayWeight + material*orderMaterialWeight

	return Round(Clamp(score, 0, MaxScore), 1)
}

// ScoreResource maps work center utilization to a criticality score.
// Unknown utilization counts as idle.
func ScoreResource(utilization entities.Value[float64]) float64 {
	u := utilization.OrElse(0)

	var score float64
	switch {
	case u < UtilizationLowPct:
		score = 10
	case u < UtilizationHighPct:
		score = 30 + (u - UtilizationLowPct)
	case u <= UtilizationFullPct:
		score = 50 + (u-UtilizationHighPct)*2.5
	default:
		score = 75 + (u-UtilizationFullPct)*1.5
	}

	return Round(Clamp(score, 0, MaxScore), 1)
}
