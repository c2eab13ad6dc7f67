package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/repositories"
	"github.com/vsinha/planboard/pkg/infrastructure/storage"
	"github.com/vsinha/planboard/pkg/infrastructure/tabular"
)

// Repository serves the latest stored extract of each kind
type Repository struct {
	store  storage.Store
	logger *slog.Logger
}

func NewRepository(store storage.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, logger: logger}
}

// Verify interface compliance
var _ repositories.SnapshotRepository = (*Repository)(nil)

// Save replaces the stored extract of env.Kind
func (r *Repository) Save(ctx context.Context, env *Envelope) error {
	data, err := env.Marshal()
	if err != nil {
		return err
	}
	return r.store.Put(ctx, string(env.Kind), data)
}

// Load returns the stored extract of kind
func (r *Repository) Load(ctx context.Context, kind entities.SnapshotKind) (*Envelope, error) {
	data, err := r.store.Get(ctx, string(kind))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", repositories.ErrSnapshotNotFound, kind)
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalEnvelope(data)
}

func (r *Repository) LoadMaterials(ctx context.Context) ([]*entities.Material, error) {
	table, err := r.table(ctx, entities.KindMaterials)
	if err != nil {
		return nil, err
	}
	materials, skipped, err := MaterialsFromTable(table)
	if err != nil {
		return nil, fmt.Errorf("materials snapshot: %w", err)
	}
	r.logSkipped(entities.KindMaterials, skipped)
	return materials, nil
}

func (r *Repository) LoadOrders(ctx context.Context) ([]*entities.ProductionOrder, error) {
	table, err := r.table(ctx, entities.KindOrders)
	if err != nil {
		return nil, err
	}
	orders, skipped, err := OrdersFromTable(table)
	if err != nil {
		return nil, fmt.Errorf("orders snapshot: %w", err)
	}
	r.logSkipped(entities.KindOrders, skipped)
	return orders, nil
}

func (r *Repository) LoadResources(ctx context.Context) ([]*entities.Resource, error) {
	table, err := r.table(ctx, entities.KindResources)
	if err != nil {
		return nil, err
	}
	resources, skipped, err := ResourcesFromTable(table)
	if err != nil {
		return nil, fmt.Errorf("resources snapshot: %w", err)
	}
	r.logSkipped(entities.KindResources, skipped)
	return resources, nil
}

func (r *Repository) table(ctx context.Context, kind entities.SnapshotKind) (*tabular.Table, error) {
	env, err := r.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	return env.Table(), nil
}

func (r *Repository) logSkipped(kind entities.SnapshotKind, skipped []RowError) {
	for _, rowErr := range skipped {
		r.logger.Warn("skipping snapshot row", "kind", kind, "row", rowErr.Row, "error", rowErr.Err)
	}
}
