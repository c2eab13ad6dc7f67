package dto

import (
	"time"

	"github.com/vsinha/planboard/pkg/domain/entities"
)

// PeggedOrder is an open order linked to the planned material
type PeggedOrder struct {
	Order     entities.OrderID `json:"order"`
	DueDate   time.Time        `json:"due_date"`
	Status    string           `json:"status"`
	Quantity  float64          `json:"quantity"`
	DelayDays int              `json:"delay_days"`
	Score     float64          `json:"score"`
}

// CorrectiveOrder is the single replenishment injected to cover a stock-out
type CorrectiveOrder struct {
	Week     int     `json:"week"`
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
}

// PlanningBoard is the weekly projection of one material
type PlanningBoard struct {
	Material        entities.MaterialID       `json:"material"`
	GeneratedAt     time.Time                 `json:"generated_at"`
	HorizonWeeks    int                       `json:"horizon_weeks"`
	CoverageDays    *float64                  `json:"coverage_days"`
	MaterialScore   float64                   `json:"material_score"`
	BaseDemand      float64                   `json:"base_demand"`
	OpeningStock    float64                   `json:"opening_stock"`
	Weeks           []entities.WeekSlot       `json:"weeks"`
	StockOutWeeks   []int                     `json:"stock_out_weeks"`
	Corrective      *CorrectiveOrder          `json:"corrective_order"`
	Pegging         []PeggedOrder             `json:"pegging"`
	Recommendations []entities.Recommendation `json:"recommendations"`
}

// HasStockOut reports whether the natural projection goes negative
func (b *PlanningBoard) HasStockOut() bool {
	return len(b.StockOutWeeks) > 0
}
