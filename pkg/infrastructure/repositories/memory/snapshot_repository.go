package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/repositories"
)

// SnapshotRepository provides in-memory snapshot storage of already mapped
// rows. A kind that was never saved reports ErrSnapshotNotFound.
type SnapshotRepository struct {
	materials []*entities.Material
	orders    []*entities.ProductionOrder
	resources []*entities.Resource
	saved     map[entities.SnapshotKind]bool
	failures  map[entities.SnapshotKind]error
	mutex     sync.RWMutex
}

// NewSnapshotRepository creates a new in-memory snapshot repository
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{
		saved:    make(map[entities.SnapshotKind]bool),
		failures: make(map[entities.SnapshotKind]error),
	}
}

// Verify interface compliance
var _ repositories.SnapshotRepository = (*SnapshotRepository)(nil)

// SaveMaterials replaces the material snapshot
func (r *SnapshotRepository) SaveMaterials(materials []*entities.Material) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.materials = materials
	r.saved[entities.KindMaterials] = true
}

// SaveOrders replaces the order snapshot
func (r *SnapshotRepository) SaveOrders(orders []*entities.ProductionOrder) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.orders = orders
	r.saved[entities.KindOrders] = true
}

// SaveResources replaces the resource snapshot
func (r *SnapshotRepository) SaveResources(resources []*entities.Resource) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.resources = resources
	r.saved[entities.KindResources] = true
}

// FailWith makes loads of kind return err, the way a stored extract with
// unresolvable columns does
func (r *SnapshotRepository) FailWith(kind entities.SnapshotKind, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.failures[kind] = err
}

func (r *SnapshotRepository) LoadMaterials(ctx context.Context) ([]*entities.Material, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if err := r.check(entities.KindMaterials); err != nil {
		return nil, err
	}
	return append([]*entities.Material(nil), r.materials...), nil
}

func (r *SnapshotRepository) LoadOrders(ctx context.Context) ([]*entities.ProductionOrder, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if err := r.check(entities.KindOrders); err != nil {
		return nil, err
	}
	return append([]*entities.ProductionOrder(nil), r.orders...), nil
}

func (r *SnapshotRepository) LoadResources(ctx context.Context) ([]*entities.Resource, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if err := r.check(entities.KindResources); err != nil {
		return nil, err
	}
	return append([]*entities.Resource(nil), r.resources...), nil
}

func (r *SnapshotRepository) check(kind entities.SnapshotKind) error {
	if err := r.failures[kind]; err != nil {
		return err
	}
	if !r.saved[kind] {
		return fmt.Errorf("%w: %s", repositories.ErrSnapshotNotFound, kind)
	}
	return nil
}
