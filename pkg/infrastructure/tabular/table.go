// Package tabular gives row access to arbitrarily named extract columns.
package tabular

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFieldNotFound is returned when none of a field's synonyms is a column
var ErrFieldNotFound = errors.New("column not found")

// Table is a decoded extract: a header row plus data rows that may be ragged
type Table struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// NewTable indexes the header by normalized name. When two columns normalize
// to the same name the first one wins.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{
		header: make([]string, len(header)),
		rows:   rows,
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		t.header[i] = h
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		if _, exists := t.index[key]; !exists {
			t.index[key] = i
		}
	}
	return t
}

func (t *Table) Header() []string {
	return t.header
}

func (t *Table) Rows() [][]string {
	return t.rows
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Resolve returns the index of the first synonym of f present in the header
func (t *Table) Resolve(f Field) (int, error) {
	for _, name := range f.Synonyms {
		if i, ok := t.index[NormalizeHeader(name)]; ok {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s (tried %s)", ErrFieldNotFound, f.Name, strings.Join(f.Synonyms, ", "))
}

// ResolveOptional is Resolve for columns an extract may legitimately omit
func (t *Table) ResolveOptional(f Field) (int, bool) {
	i, err := t.Resolve(f)
	return i, err == nil
}

// Cell returns the trimmed cell at row/col, or "" when the row is short or
// col is negative
func (t *Table) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.rows) || col >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][col])
}

// Preview returns up to n rows keyed by header name. Unnamed columns are
// keyed by their position.
func (t *Table) Preview(n int) []map[string]string {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	preview := make([]map[string]string, 0, n)
	for r := 0; r < n; r++ {
		row := make(map[string]string, len(t.header))
		for c, h := range t.header {
			if h == "" {
				h = fmt.Sprintf("column_%d", c+1)
			}
			row[h] = t.Cell(r, c)
		}
		preview = append(preview, row)
	}
	return preview
}

// PromoteHeader handles work center exports whose header row is blank (or
// was written out as "Unnamed: n") and whose first data row holds the real
// column names. Other tables are returned unchanged.
func PromoteHeader(t *Table) *Table {
	if len(t.rows) == 0 {
		return t
	}
	for _, h := range t.header {
		if h != "" && !strings.HasPrefix(h, "Unnamed") {
			return t
		}
	}

	first := t.rows[0]
	for _, cell := range first {
		value := strings.ToLower(strings.TrimSpace(cell))
		for _, marker := range headerMarkers {
			if value == marker {
				return NewTable(first, t.rows[1:])
			}
		}
	}
	return t
}
