// Package snapshot decodes uploaded extracts, keeps them in blob storage and
// maps them to domain rows.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/infrastructure/tabular"
)

// Envelope is the stored form of one uploaded extract. The decoded table is
// kept as text cells so the extract is parsed once, at upload time.
type Envelope struct {
	ID         string                `json:"id"`
	Kind       entities.SnapshotKind `json:"kind"`
	Filename   string                `json:"filename"`
	UploadedAt time.Time             `json:"uploaded_at"`
	Header     []string              `json:"header"`
	Rows       [][]string            `json:"rows"`
}

func NewEnvelope(id string, kind entities.SnapshotKind, filename string, uploadedAt time.Time, table *tabular.Table) *Envelope {
	return &Envelope{
		ID:         id,
		Kind:       kind,
		Filename:   filename,
		UploadedAt: uploadedAt,
		Header:     table.Header(),
		Rows:       table.Rows(),
	}
}

// Table rebuilds the column index of the stored extract
func (e *Envelope) Table() *tabular.Table {
	return tabular.NewTable(e.Header, e.Rows)
}

func (e *Envelope) Marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot %s: %w", e.ID, err)
	}
	return data, nil
}

func UnmarshalEnvelope(data []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if e.Kind == "" {
		return nil, fmt.Errorf("failed to decode snapshot: missing kind")
	}
	return &e, nil
}
