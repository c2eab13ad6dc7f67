package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/vsinha/planboard/pkg/infrastructure/tabular"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader decodes planning extracts exported as delimited text
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile decodes the extract stored at filename
func (l *Loader) LoadFile(filename string) (*tabular.Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open extract %s: %w", filename, err)
	}
	return l.Decode(data)
}

// Decode parses a ';' or ',' separated extract. Input that is not valid
// UTF-8 is read as Windows-1252, the usual encoding of spreadsheet exports.
func (l *Loader) Decode(data []byte) (*tabular.Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var r io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.Comma = detectSeparator(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header) {
		return nil, fmt.Errorf("CSV header is empty")
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		rows = append(rows, record)
	}

	return tabular.NewTable(header, rows), nil
}

// detectSeparator picks ';' when the header line has more semicolons than
// commas. Locales with decimal commas export with semicolons.
func detectSeparator(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	if bytes.Count(line, []byte("\t")) > bytes.Count(line, []byte(",")) {
		return '\t'
	}
	return ','
}

// validateHeader accepts headers with at least one column. Work center
// exports with a blank header line are accepted too, they get their header
// promoted from the first row later.
func validateHeader(header []string) bool {
	return len(header) > 0
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
