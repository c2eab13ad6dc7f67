package tabular

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/planboard/pkg/domain/entities"
)

// dateLayouts are tried in order. Day-first layouts precede month-first ones
// because the extracts come from day-first locales.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2006.01.02",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02.01.2006 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Excel serial day numbers accepted as dates: 1900-01-01 to 9999-12-31
const (
	minExcelSerial = 1.0
	maxExcelSerial = 2958465.0
)

// ParseNumber reads a loosely formatted number. Decimal commas, thousands
// separators and a trailing percent sign are accepted.
func ParseNumber(raw string) entities.Value[float64] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return entities.Missing[float64]()
	}

	cleaned := strings.TrimSpace(strings.TrimSuffix(s, "%"))
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", "")

	comma := strings.LastIndex(cleaned, ",")
	dot := strings.LastIndex(cleaned, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case strings.Count(cleaned, ",") == 1:
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	f, err := cast.ToFloat64E(cleaned)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return entities.Unparsed[float64](raw)
	}
	return entities.Known(f)
}

// ParseInt reads a whole number, truncating any fraction
func ParseInt(raw string) entities.Value[int] {
	v := ParseNumber(raw)
	switch v.State() {
	case entities.Absent:
		return entities.Missing[int]()
	case entities.Invalid:
		return entities.Unparsed[int](raw)
	}
	f, _ := v.Get()
	return entities.Known(cast.ToInt(math.Trunc(f)))
}

// ParseDate reads a date in any of the supported layouts, or an Excel serial
// day number as produced by raw xlsx cell values
func ParseDate(raw string) entities.Value[time.Time] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return entities.Missing[time.Time]()
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entities.Known(entities.Date(t))
		}
	}

	if serial, err := cast.ToFloat64E(s); err == nil && serial >= minExcelSerial && serial <= maxExcelSerial {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return entities.Known(entities.Date(t))
		}
	}

	return entities.Unparsed[time.Time](raw)
}
