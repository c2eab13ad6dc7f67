package snapshot

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	csvloader "github.com/vsinha/planboard/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/planboard/pkg/infrastructure/repositories/xlsx"
	"github.com/vsinha/planboard/pkg/infrastructure/tabular"
)

// ErrUnsupportedFormat is returned for files that are neither xlsx nor
// delimited text
var ErrUnsupportedFormat = errors.New("unsupported file format")

// SupportedExtensions lists the accepted upload file extensions
var SupportedExtensions = []string{".xlsx", ".csv", ".txt"}

// Decoder picks a loader by file extension
type Decoder struct {
	csv  *csvloader.Loader
	xlsx *xlsx.Loader
}

func NewDecoder() *Decoder {
	return &Decoder{
		csv:  csvloader.NewLoader(),
		xlsx: xlsx.NewLoader(),
	}
}

// CheckExtension validates filename before its content is read
func CheckExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (expected one of %s)", ErrUnsupportedFormat, filename, strings.Join(SupportedExtensions, ", "))
}

func (d *Decoder) Decode(filename string, data []byte) (*tabular.Table, error) {
	if err := CheckExtension(filename); err != nil {
		return nil, err
	}

	var (
		table *tabular.Table
		err   error
	)
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		table, err = d.xlsx.Decode(data)
	} else {
		table, err = d.csv.Decode(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return table, nil
}
