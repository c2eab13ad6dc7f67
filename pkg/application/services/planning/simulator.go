// Package planning projects weekly stock for one material and sizes a single
// corrective production order when the projection runs out of stock.
package planning

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vsinha/planboard/pkg/application/dto"
	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/services"
)

const (
	DefaultHorizonWeeks = 8
	MinHorizonWeeks     = 1
	MaxHorizonWeeks     = 12

	// PeggingLimit caps the number of orders linked to the board
	PeggingLimit = 10

	demandSwing        = 25.0
	unknownStockFactor = 0.5
	excessDemandFactor = 3.0
	daysPerWeek        = 7
	tightCoverageDays  = 30.0
)

var (
	ErrMaterialRequired = errors.New("material id is required")
	ErrMaterialNotFound = errors.New("material not found in snapshot")
)

// Request describes one planning board simulation. Material is nil when the
// snapshot does not contain the requested id.
type Request struct {
	MaterialID   entities.MaterialID
	HorizonWeeks int
	Material     *entities.Material
	Orders       []*entities.ProductionOrder
}

// Simulator builds planning boards
type Simulator struct {
	clock services.Clock
}

// NewSimulator creates a simulator reading "today" from clock
func NewSimulator(clock services.Clock) *Simulator {
	if clock == nil {
		clock = services.SystemClock{}
	}
	return &Simulator{clock: clock}
}

// ClampHorizon limits a requested horizon to the supported range
func ClampHorizon(weeks int) int {
	if weeks < MinHorizonWeeks {
		return MinHorizonWeeks
	}
	if weeks > MaxHorizonWeeks {
		return MaxHorizonWeeks
	}
	return weeks
}

// Simulate runs the weekly projection for the requested material
func (s *Simulator) Simulate(req Request) (*dto.PlanningBoard, error) {
	if req.MaterialID == "" {
		return nil, ErrMaterialRequired
	}
	if req.Material == nil {
		return nil, fmt.Errorf("%w: %s", ErrMaterialNotFound, req.MaterialID)
	}

	today := s.clock.Today()
	horizon := ClampHorizon(req.HorizonWeeks)
	coverage, coverageKnown := req.Material.CoverageDays.Get()
	materialScore := services.ScoreMaterial(req.Material.CoverageDays)

	base := BaseDemand(req.Material.CoverageDays)
	demand := WeeklyDemand(base, horizon)
	existing := existingProduction(req, horizon, today)
	opening := OpeningStock(base, req.Material.CoverageDays)

	natural := Project(opening, existing, nil, demand)
	stockOuts := StockOutWeeks(natural)

	corrective := make([]float64, horizon)
	var correctiveOrder *dto.CorrectiveOrder
	if len(stockOuts) > 0 {
		week, qty := SizeCorrectiveOrder(natural, stockOuts[0], base)
		corrective[week] = qty
		correctiveOrder = &dto.CorrectiveOrder{
			Week:     week + 1,
			Label:    entities.WeekLabel(week + 1),
			Quantity: qty,
		}
	}
	post := Project(opening, existing, corrective, demand)

	weeks := make([]entities.WeekSlot, horizon)
	for i := range weeks {
		weeks[i] = entities.WeekSlot{
			Index:                 i + 1,
			Label:                 entities.WeekLabel(i + 1),
			Demand:                services.Round(demand[i], 1),
			ExistingProduction:    services.Round(existing[i], 1),
			CorrectiveProduction:  corrective[i],
			NaturalStock:          natural[i],
			PostInterventionStock: post[i],
		}
	}

	board := &dto.PlanningBoard{
		Material:      req.MaterialID,
		GeneratedAt:   today,
		HorizonWeeks:  horizon,
		MaterialScore: materialScore,
		BaseDemand:    base,
		OpeningStock:  services.Round(opening, 1),
		Weeks:         weeks,
		StockOutWeeks: make([]int, 0, len(stockOuts)),
		Corrective:    correctiveOrder,
		Pegging:       peg(req, materialScore, today),
	}
	if coverageKnown {
		board.CoverageDays = &coverage
	}
	for _, idx := range stockOuts {
		board.StockOutWeeks = append(board.StockOutWeeks, idx+1)
	}
	board.Recommendations = recommend(board, natural)

	return board, nil
}

// BaseDemand is a placeholder forecast derived from coverage until a real
// demand signal is wired in
func BaseDemand(coverage entities.Value[float64]) float64 {
	c, ok := coverage.Get()
	switch {
	case !ok || c <= 0:
		return 220
	case c < services.CoverageAtRiskDays:
		return 240
	case c < tightCoverageDays:
		return 210
	default:
		return 180
	}
}

// WeeklyDemand spreads the base demand over the horizon with a -25/0/+25
// repeating swing
func WeeklyDemand(base float64, horizon int) []float64 {
	demand := make([]float64, horizon)
	for i := range demand {
		demand[i] = base + float64(i%3-1)*demandSwing
	}
	return demand
}

// OpeningStock converts coverage days into units at the base weekly demand
func OpeningStock(base float64, coverage entities.Value[float64]) float64 {
	c, ok := coverage.Get()
	if !ok {
		return base * unknownStockFactor
	}
	return math.Max(0, base*c/daysPerWeek)
}

// Project runs the stock balance week by week. The running balance is kept
// unrounded; each stored week is rounded to one decimal. corrective may be nil.
func Project(opening float64, existing, corrective, demand []float64) []float64 {
	stock := make([]float64, len(demand))
	balance := opening
	for i := range demand {
		balance += existing[i] - demand[i]
		if corrective != nil {
			balance += corrective[i]
		}
		stock[i] = services.Round(balance, 1)
	}
	return stock
}

// StockOutWeeks returns the 0-based weeks with negative projected stock
func StockOutWeeks(stock []float64) []int {
	weeks := make([]int, 0)
	for i, v := range stock {
		if v < 0 {
			weeks = append(weeks, i)
		}
	}
	return weeks
}

// SizeCorrectiveOrder places one order the week before the first stock-out
// (or in the first week) covering the worst deficit up to that point plus a
// week of base demand. Later stock-out windows are not addressed separately.
func SizeCorrectiveOrder(natural []float64, firstStockOut int, base float64) (int, float64) {
	week := firstStockOut - 1
	if week < 0 {
		week = 0
	}
	worst := natural[0]
	for _, v := range natural[:firstStockOut+1] {
		worst = math.Min(worst, v)
	}
	return week, services.Round(math.Abs(worst)+base, 1)
}

// existingProduction buckets the open orders due within the horizon by week
func existingProduction(req Request, horizon int, today time.Time) []float64 {
	production := make([]float64, horizon)
	horizonDays := daysPerWeek * horizon

	for _, o := range req.Orders {
		if o.Material != req.MaterialID || o.IsClosed() {
			continue
		}
		due, ok := o.DueDate.Get()
		if !ok {
			continue
		}
		days := entities.DaysBetween(today, due)
		if days < 0 || days > horizonDays {
			continue
		}
		week := days / daysPerWeek
		if week >= horizon {
			continue
		}
		production[week] += o.Quantity.OrElse(0)
	}
	return production
}

// peg links the open orders of the material to the board, most delayed
// first. Delays resolve the same way the order scores do.
func peg(req Request, materialScore float64, today time.Time) []dto.PeggedOrder {
	pegged := make([]dto.PeggedOrder, 0)
	scores := map[entities.MaterialID]float64{req.MaterialID: materialScore}

	for _, o := range req.Orders {
		if o.Material != req.MaterialID || o.IsClosed() {
			continue
		}
		due, ok := o.DueDate.Get()
		if !ok {
			continue
		}
		signal := services.SignalFor(o, scores, today)
		pegged = append(pegged, dto.PeggedOrder{
			Order:     o.ID,
			DueDate:   due,
			Status:    o.Status,
			Quantity:  o.Quantity.OrElse(0),
			DelayDays: services.OrderDelay(signal),
			Score:     services.ScoreOrder(signal),
		})
	}

	sort.Slice(pegged, func(i, j int) bool {
		if pegged[i].DelayDays != pegged[j].DelayDays {
			return pegged[i].DelayDays > pegged[j].DelayDays
		}
		if !pegged[i].DueDate.Equal(pegged[j].DueDate) {
			return pegged[i].DueDate.Before(pegged[j].DueDate)
		}
		return pegged[i].Order < pegged[j].Order
	})

	if len(pegged) > PeggingLimit {
		pegged = pegged[:PeggingLimit]
	}
	return pegged
}
