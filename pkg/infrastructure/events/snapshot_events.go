package events

import (
	"time"

	"github.com/vsinha/planboard/pkg/domain/entities"
)

const (
	SnapshotReplacedEvent  = "snapshot.replaced"
	StockOutProjectedEvent = "stockout.projected"
)

// SnapshotStream names the stream holding the upload history of one kind
func SnapshotStream(kind entities.SnapshotKind) string {
	return "snapshots/" + string(kind)
}

// MaterialStream names the stream holding projections of one material
func MaterialStream(material entities.MaterialID) string {
	return "materials/" + string(material)
}

type SnapshotReplaced struct {
	SnapshotID string                `json:"snapshot_id"`
	Kind       entities.SnapshotKind `json:"kind"`
	Filename   string                `json:"filename"`
	Rows       int                   `json:"rows"`
	UploadedAt time.Time             `json:"uploaded_at"`
}

type StockOutProjected struct {
	Material           entities.MaterialID `json:"material"`
	FirstWeek          int                 `json:"first_week"`
	CorrectiveQuantity float64             `json:"corrective_quantity"`
}
