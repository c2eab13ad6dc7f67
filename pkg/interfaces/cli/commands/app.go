package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vsinha/planboard/pkg/application/services/ingest"
	"github.com/vsinha/planboard/pkg/application/services/orchestration"
	"github.com/vsinha/planboard/pkg/domain/services"
	"github.com/vsinha/planboard/pkg/infrastructure/config"
	"github.com/vsinha/planboard/pkg/infrastructure/events"
	"github.com/vsinha/planboard/pkg/infrastructure/metrics"
	"github.com/vsinha/planboard/pkg/infrastructure/repositories/snapshot"
	"github.com/vsinha/planboard/pkg/infrastructure/storage"
)

// App wires the storage backend, event log and services for one process
type App struct {
	Config       *config.Config
	Logger       *slog.Logger
	Store        storage.Store
	Events       *events.InMemoryEventStore
	Metrics      *metrics.Metrics
	Ingest       *ingest.Service
	Orchestrator *orchestration.PlanningOrchestrator
}

// NewApp opens the configured snapshot store and builds the services on
// top of it. clock may be nil for the system clock.
func NewApp(ctx context.Context, cfg *config.Config, clock services.Clock, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	eventStore := events.NewInMemoryEventStore(logger)
	m := metrics.New()
	if err := eventStore.Subscribe(metrics.EventTypes, m); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to subscribe metrics: %w", err)
	}

	repo := snapshot.NewRepository(store, logger)
	return &App{
		Config:       cfg,
		Logger:       logger,
		Store:        store,
		Events:       eventStore,
		Metrics:      m,
		Ingest:       ingest.NewService(repo, eventStore, clock, logger),
		Orchestrator: orchestration.NewPlanningOrchestrator(repo, eventStore, clock, logger),
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
