package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/planboard/pkg/infrastructure/tabular"
)

// Loader decodes the first worksheet of an xlsx workbook
type Loader struct{}

// NewLoader creates a new xlsx loader
func NewLoader() *Loader {
	return &Loader{}
}

// Decode reads raw cell values, so date cells arrive as Excel serial day
// numbers and are left to tabular.ParseDate.
func (l *Loader) Decode(data []byte) (*tabular.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	// GetRows drops trailing empty rows but keeps inner ones
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		records = append(records, row)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("sheet %s must have header and at least one data row", sheet)
	}

	return tabular.NewTable(records[0], records[1:]), nil
}
