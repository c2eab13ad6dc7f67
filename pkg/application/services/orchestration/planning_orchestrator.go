package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vsinha/planboard/pkg/application/dto"
	"github.com/vsinha/planboard/pkg/application/services/insights"
	"github.com/vsinha/planboard/pkg/application/services/kpi"
	"github.com/vsinha/planboard/pkg/application/services/planning"
	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/repositories"
	"github.com/vsinha/planboard/pkg/domain/services"
	"github.com/vsinha/planboard/pkg/infrastructure/events"
)

// ErrUploadRequired is returned when the mandatory material snapshot has not
// been uploaded yet
var ErrUploadRequired = errors.New("upload required: no material snapshot")

// Dashboard block names used in warnings
const (
	BlockMaterials = "materials"
	BlockOrders    = "orders"
	BlockResources = "resources"
)

// PlanningOrchestrator loads the latest snapshots and runs the scoring,
// aggregation and simulation services over them. Every call recomputes from
// the stored extracts.
type PlanningOrchestrator struct {
	repo      repositories.SnapshotRepository
	simulator *planning.Simulator
	events    events.EventStore
	clock     services.Clock
	logger    *slog.Logger
}

// NewPlanningOrchestrator creates a new planning orchestrator. eventStore
// may be nil, in which case projected stock-outs are not published. Boards
// are read-only: stock-outs are published to subscribers, never appended.
func NewPlanningOrchestrator(
	repo repositories.SnapshotRepository,
	eventStore events.EventStore,
	clock services.Clock,
	logger *slog.Logger,
) *PlanningOrchestrator {
	if clock == nil {
		clock = services.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanningOrchestrator{
		repo:      repo,
		simulator: planning.NewSimulator(clock),
		events:    eventStore,
		clock:     clock,
		logger:    logger,
	}
}

// DashboardSummary computes the material, order and resource KPI blocks.
// Order and resource problems are reported as warnings; the material block
// is mandatory.
func (po *PlanningOrchestrator) DashboardSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	materials, err := po.loadMaterials(ctx)
	if err != nil {
		return nil, err
	}

	materialKPIs, err := kpi.AggregateMaterials(materials)
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummary{
		GeneratedAt: po.clock.Now(),
		Materials:   materialKPIs,
	}

	orders, err := po.repo.LoadOrders(ctx)
	switch {
	case err == nil, errors.Is(err, repositories.ErrSnapshotNotFound):
		scores := kpi.BuildMaterialScoreMap(materials)
		summary.Orders = kpi.AggregateOrders(orders, scores, po.clock.Today())
	default:
		summary.Warnings = append(summary.Warnings, po.blockError(BlockOrders, err))
	}

	resources, err := po.repo.LoadResources(ctx)
	switch {
	case err == nil, errors.Is(err, repositories.ErrSnapshotNotFound):
		summary.Resources = kpi.AggregateResources(resources)
	default:
		summary.Warnings = append(summary.Warnings, po.blockError(BlockResources, err))
	}

	return summary, nil
}

// Insights runs the insight rule table over the current dashboard summary
func (po *PlanningOrchestrator) Insights(ctx context.Context) (*dto.InsightsReport, error) {
	summary, err := po.DashboardSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.InsightsReport{
		GeneratedAt: summary.GeneratedAt,
		Insights:    insights.Generate(summary),
	}, nil
}

// CapacityReport classifies the work centers of the resource snapshot
func (po *PlanningOrchestrator) CapacityReport(ctx context.Context) (*dto.CapacityReport, error) {
	resources, err := po.repo.LoadResources(ctx)
	if errors.Is(err, repositories.ErrSnapshotNotFound) {
		return nil, insights.ErrNoCapacityData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}
	return insights.CapacityReport(kpi.AggregateResources(resources), po.clock.Now())
}

// PlanningBoard projects the weekly stock of one material. The horizon is
// clamped to the supported range.
func (po *PlanningOrchestrator) PlanningBoard(
	ctx context.Context,
	materialID entities.MaterialID,
	horizonWeeks int,
) (*dto.PlanningBoard, error) {
	if materialID == "" {
		return nil, planning.ErrMaterialRequired
	}

	materials, err := po.loadMaterials(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := po.repo.LoadOrders(ctx)
	if err != nil && !errors.Is(err, repositories.ErrSnapshotNotFound) {
		po.logger.Warn("planning board without orders", "material", materialID, "error", err)
	}

	board, err := po.simulator.Simulate(planning.Request{
		MaterialID:   materialID,
		HorizonWeeks: horizonWeeks,
		Material:     findMaterial(materials, materialID),
		Orders:       orders,
	})
	if err != nil {
		return nil, err
	}

	if board.HasStockOut() {
		po.publishStockOut(board)
	}
	return board, nil
}

func (po *PlanningOrchestrator) loadMaterials(ctx context.Context) ([]*entities.Material, error) {
	materials, err := po.repo.LoadMaterials(ctx)
	if errors.Is(err, repositories.ErrSnapshotNotFound) {
		return nil, ErrUploadRequired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}
	return materials, nil
}

func (po *PlanningOrchestrator) blockError(block string, err error) dto.BlockError {
	po.logger.Warn("dashboard block unavailable", "block", block, "error", err)
	return dto.BlockError{Block: block, Message: err.Error()}
}

func (po *PlanningOrchestrator) publishStockOut(board *dto.PlanningBoard) {
	if po.events == nil {
		return
	}

	data := events.StockOutProjected{
		Material:  board.Material,
		FirstWeek: board.StockOutWeeks[0],
	}
	if board.Corrective != nil {
		data.CorrectiveQuantity = board.Corrective.Quantity
	}

	stream := events.MaterialStream(board.Material)
	po.events.Publish(events.NewEvent(events.StockOutProjectedEvent, stream, data, po.clock.Now()))
}

// findMaterial returns the first row with the given id, matching the score
// map's first-occurrence rule
func findMaterial(materials []*entities.Material, id entities.MaterialID) *entities.Material {
	for _, m := range materials {
		if m.ID == id {
			return m
		}
	}
	return nil
}
