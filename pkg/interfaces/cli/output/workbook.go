package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/planboard/pkg/application/dto"
)

// generateWorkbook exports boards and dashboard summaries as .xlsx so
// planners can keep working on them in Excel
func generateWorkbook(result interface{}, config Config) error {
	f := excelize.NewFile()
	defer f.Close()

	var err error
	switch r := result.(type) {
	case *dto.PlanningBoard:
		err = fillBoardWorkbook(f, r)
	case *dto.DashboardSummary:
		err = fillDashboardWorkbook(f, r)
	default:
		return fmt.Errorf("xlsx output is not available for %T", result)
	}
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return writeFile(config, config.fileName("xlsx"), buf.Bytes())
}

// writeSheet renames or creates sheet and writes header plus rows from A1
func writeSheet(f *excelize.File, index int, sheet string, header []interface{}, rows [][]interface{}) error {
	if index == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func fillBoardWorkbook(f *excelize.File, b *dto.PlanningBoard) error {
	weeks := make([][]interface{}, 0, len(b.Weeks))
	for _, slot := range b.Weeks {
		weeks = append(weeks, []interface{}{
			slot.Label, slot.Demand, slot.ExistingProduction, slot.CorrectiveProduction,
			slot.NaturalStock, slot.PostInterventionStock,
		})
	}
	err := writeSheet(f, 0, "Board",
		[]interface{}{"Week", "Demand", "Existing", "Corrective", "Natural stock", "Projected stock"},
		weeks)
	if err != nil {
		return err
	}

	pegging := make([][]interface{}, 0, len(b.Pegging))
	for _, p := range b.Pegging {
		pegging = append(pegging, []interface{}{
			string(p.Order), p.DueDate.Format("2006-01-02"), p.Status, p.Quantity, p.DelayDays, p.Score,
		})
	}
	return writeSheet(f, 1, "Pegging",
		[]interface{}{"Order", "Due date", "Status", "Quantity", "Delay days", "Score"},
		pegging)
}

func fillDashboardWorkbook(f *excelize.File, s *dto.DashboardSummary) error {
	materials := make([][]interface{}, 0, len(s.Materials.Top))
	for _, m := range s.Materials.Top {
		materials = append(materials, []interface{}{string(m.Material), m.CoverageDays, m.Score})
	}
	if err := writeSheet(f, 0, "Materials", []interface{}{"Material", "Coverage days", "Score"}, materials); err != nil {
		return err
	}

	var orders [][]interface{}
	if s.Orders != nil {
		for _, o := range s.Orders.Top {
			orders = append(orders, []interface{}{
				string(o.Order), string(o.Material), o.DueDate.Format("2006-01-02"), o.Status, o.DelayDays, o.Score,
			})
		}
	}
	err := writeSheet(f, 1, "Orders",
		[]interface{}{"Order", "Material", "Due date", "Status", "Delay days", "Score"},
		orders)
	if err != nil {
		return err
	}

	var resources [][]interface{}
	if s.Resources != nil {
		for _, r := range s.Resources.Top {
			resources = append(resources, []interface{}{string(r.Resource), r.Plant, r.Utilization, r.Score})
		}
	}
	return writeSheet(f, 2, "Resources", []interface{}{"Resource", "Plant", "Utilization %", "Score"}, resources)
}
