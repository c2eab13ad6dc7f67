package dto

import (
	"time"

	"github.com/vsinha/planboard/pkg/domain/entities"
)

// UploadReceipt acknowledges a stored extract
type UploadReceipt struct {
	SnapshotID string                `json:"snapshot_id"`
	Kind       entities.SnapshotKind `json:"kind"`
	Filename   string                `json:"filename"`
	Rows       int                   `json:"rows"`
	Columns    []string              `json:"columns"`
	Preview    []map[string]string   `json:"preview"`
	UploadedAt time.Time             `json:"uploaded_at"`
}

// UploadRecord is one entry of the upload history
type UploadRecord struct {
	SnapshotID string                `json:"snapshot_id"`
	Kind       entities.SnapshotKind `json:"kind"`
	Filename   string                `json:"filename"`
	Rows       int                   `json:"rows"`
	UploadedAt time.Time             `json:"uploaded_at"`
	Version    int                   `json:"version"`
}
