package planning

import (
	"fmt"
	"math"

	"github.com/vsinha/planboard/pkg/application/dto"
	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/services"
)

// recommend evaluates the board rules in order. Each rule fires on its own;
// the informational fallback only when none did.
func recommend(board *dto.PlanningBoard, natural []float64) []entities.Recommendation {
	recs := make([]entities.Recommendation, 0, 4)

	if board.Corrective != nil {
		first := board.StockOutWeeks[0]
		recs = append(recs, entities.Recommendation{
			Title: fmt.Sprintf("Create corrective order of %d units for %s",
				int(math.Trunc(board.Corrective.Quantity)), board.Corrective.Label),
			Detail: fmt.Sprintf(
				"Projected stock of material %s turns negative from %s in %d week(s); "+
					"the corrective order in %s keeps it positive over the horizon.",
				board.Material, entities.WeekLabel(first), len(board.StockOutWeeks), board.Corrective.Label),
			Category: entities.CategoryProduction,
			Severity: entities.SeverityHigh,
		})
	}

	if board.CoverageDays != nil && *board.CoverageDays < services.CoverageAtRiskDays {
		recs = append(recs, entities.Recommendation{
			Title: "Review MRP parameters and safety stock",
			Detail: fmt.Sprintf(
				"Current coverage of material %s is %.1f days, a high short-term stock-out risk. "+
					"Consider a temporary safety stock increase or pulling purchases and production forward.",
				board.Material, *board.CoverageDays),
			Category: entities.CategoryPlanning,
			Severity: entities.SeverityMedium,
		})
	}

	if !board.HasStockOut() && len(natural) > 0 && natural[len(natural)-1] > board.BaseDemand*excessDemandFactor {
		recs = append(recs, entities.Recommendation{
			Title: "Evaluate lot size reduction or postponing orders",
			Detail: "Projected stock stays high over the whole horizon. " +
				"Review lot sizes and replenishment frequency to release capacity and working capital.",
			Category: entities.CategoryPlanning,
			Severity: entities.SeverityMedium,
		})
	}

	late := 0
	for _, p := range board.Pegging {
		if p.DelayDays > 0 {
			late++
		}
	}
	if late > 0 {
		recs = append(recs, entities.Recommendation{
			Title: "Re-prioritize late orders of this material",
			Detail: fmt.Sprintf(
				"%d order(s) of material %s are past their due date and may starve customers or lines.",
				late, board.Material),
			Category: entities.CategoryFollowUp,
			Severity: entities.SeverityHigh,
		})
	}

	if len(recs) == 0 {
		recs = append(recs, entities.Recommendation{
			Title:    "No critical action identified",
			Detail:   "No relevant stock-out or excess was found over the analysed horizon.",
			Category: entities.CategoryInformational,
			Severity: entities.SeverityInfo,
		})
	}

	return recs
}
