package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/repositories"
)

func TestSnapshotRepository_NotFound(t *testing.T) {
	repo := NewSnapshotRepository()
	ctx := context.Background()

	if _, err := repo.LoadMaterials(ctx); !errors.Is(err, repositories.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound for materials, got %v", err)
	}
	if _, err := repo.LoadOrders(ctx); !errors.Is(err, repositories.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound for orders, got %v", err)
	}
	if _, err := repo.LoadResources(ctx); !errors.Is(err, repositories.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound for resources, got %v", err)
	}
}

func TestSnapshotRepository_SaveAndLoad(t *testing.T) {
	repo := NewSnapshotRepository()
	ctx := context.Background()

	m, err := entities.NewMaterial("M-1", entities.Known(5.0))
	if err != nil {
		t.Fatalf("Failed to create material: %v", err)
	}
	repo.SaveMaterials([]*entities.Material{m})

	// an empty but saved snapshot is not "not found"
	repo.SaveOrders(nil)

	materials, err := repo.LoadMaterials(ctx)
	if err != nil {
		t.Fatalf("Failed to load materials: %v", err)
	}
	if len(materials) != 1 || materials[0].ID != "M-1" {
		t.Errorf("Expected material M-1, got %v", materials)
	}

	orders, err := repo.LoadOrders(ctx)
	if err != nil {
		t.Fatalf("Failed to load orders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("Expected no orders, got %d", len(orders))
	}
}

func TestSnapshotRepository_FailWith(t *testing.T) {
	repo := NewSnapshotRepository()
	repo.SaveResources(nil)

	boom := errors.New("column not found: utilization")
	repo.FailWith(entities.KindResources, boom)

	if _, err := repo.LoadResources(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Expected injected error, got %v", err)
	}
}
