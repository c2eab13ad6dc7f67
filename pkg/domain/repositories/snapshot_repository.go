package repositories

import (
	"context"
	"errors"

	"github.com/vsinha/planboard/pkg/domain/entities"
)

// ErrSnapshotNotFound is returned when no extract of the requested kind has
// been uploaded yet
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository provides the rows of the latest uploaded extracts
type SnapshotRepository interface {
	LoadMaterials(ctx context.Context) ([]*entities.Material, error)
	LoadOrders(ctx context.Context) ([]*entities.ProductionOrder, error)
	LoadResources(ctx context.Context) ([]*entities.Resource, error)
}
