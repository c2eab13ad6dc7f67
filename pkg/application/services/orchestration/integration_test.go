package orchestration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/planboard/pkg/application/services/insights"
	"github.com/vsinha/planboard/pkg/application/services/kpi"
	"github.com/vsinha/planboard/pkg/application/services/planning"
	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/infrastructure/events"
	"github.com/vsinha/planboard/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/planboard/pkg/infrastructure/tabular"
	testinghelpers "github.com/vsinha/planboard/pkg/infrastructure/testing"
)

func newOrchestrator(repo *memory.SnapshotRepository) (*PlanningOrchestrator, *events.InMemoryEventStore) {
	store := events.NewInMemoryEventStore(nil)
	return NewPlanningOrchestrator(repo, store, testinghelpers.Clock(), nil), store
}

func TestPlanningOrchestrator_DashboardSummary(t *testing.T) {
	orchestrator, _ := newOrchestrator(testinghelpers.BuildPlantScenario())

	summary, err := orchestrator.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Warnings)
	assert.True(t, summary.GeneratedAt.Equal(testinghelpers.Today))

	m := summary.Materials
	assert.Equal(t, 3, m.Total)
	assert.Equal(t, 1, m.AtRisk)
	assert.Equal(t, 33.33, m.AtRiskPct)
	assert.Equal(t, 1, m.Excess)
	assert.Equal(t, 1, m.Normal)
	assert.Equal(t, 1, m.Dropped)
	assert.Equal(t, 1, m.HighCriticality)
	require.Len(t, m.Top, 3)
	assert.Equal(t, entities.MaterialID("M-100"), m.Top[0].Material)
	assert.Equal(t, 92.9, m.Top[0].Score)
	assert.Equal(t, entities.MaterialID("M-200"), m.Top[2].Material)

	o := summary.Orders
	require.NotNil(t, o)
	assert.Equal(t, 4, o.Total)
	assert.Equal(t, 2, o.Late)
	assert.Equal(t, 50.0, o.LatePct)
	assert.Equal(t, 1, o.Dropped)
	assert.Equal(t, 2, o.HighCriticality)
	require.Len(t, o.Top, 2)
	assert.Equal(t, entities.OrderID("O-1"), o.Top[0].Order)
	assert.Equal(t, 85.8, o.Top[0].Score)
	assert.Equal(t, 5, o.Top[0].DelayDays)
	assert.Equal(t, entities.OrderID("O-4"), o.Top[1].Order)
	assert.Equal(t, 85.3, o.Top[1].Score)

	r := summary.Resources
	require.NotNil(t, r)
	require.NotNil(t, r.Summary)
	assert.Equal(t, 3, r.Summary.Total)
	assert.Equal(t, 1, r.Dropped, "WC-04 has no readable utilization")
	assert.Equal(t, 1, r.Summary.Below90)
	assert.Equal(t, 1, r.Summary.Between90And100)
	assert.Equal(t, 1, r.Summary.Above100)
	require.NotNil(t, r.Summary.MeanUtilization)
	assert.Equal(t, 91.7, *r.Summary.MeanUtilization)
	require.Len(t, r.Top, 3)
	assert.Equal(t, entities.ResourceID("WC-01"), r.Top[0].Resource)
	assert.Equal(t, 100.0, r.Top[0].Score)
}

func TestPlanningOrchestrator_UploadRequired(t *testing.T) {
	orchestrator, _ := newOrchestrator(memory.NewSnapshotRepository())
	ctx := context.Background()

	_, err := orchestrator.DashboardSummary(ctx)
	assert.True(t, errors.Is(err, ErrUploadRequired))

	_, err = orchestrator.Insights(ctx)
	assert.True(t, errors.Is(err, ErrUploadRequired))

	_, err = orchestrator.PlanningBoard(ctx, "M-100", 4)
	assert.True(t, errors.Is(err, ErrUploadRequired))
}

func TestPlanningOrchestrator_OptionalSnapshotsMissing(t *testing.T) {
	repo := memory.NewSnapshotRepository()
	repo.SaveMaterials([]*entities.Material{testinghelpers.Material("M-1", 30)})
	orchestrator, _ := newOrchestrator(repo)

	summary, err := orchestrator.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Warnings)
	assert.Equal(t, 0, summary.Orders.Total)
	assert.Empty(t, summary.Orders.Top)
	assert.Nil(t, summary.Resources.Summary)

	_, err = orchestrator.CapacityReport(context.Background())
	assert.True(t, errors.Is(err, insights.ErrNoCapacityData))
}

func TestPlanningOrchestrator_BlockErrorsBecomeWarnings(t *testing.T) {
	repo := testinghelpers.BuildPlantScenario()
	repo.FailWith(entities.KindOrders, tabular.ErrFieldNotFound)
	orchestrator, _ := newOrchestrator(repo)

	summary, err := orchestrator.DashboardSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Warnings, 1)
	assert.Equal(t, BlockOrders, summary.Warnings[0].Block)
	assert.Nil(t, summary.Orders)
	assert.NotNil(t, summary.Materials)
	assert.NotNil(t, summary.Resources.Summary, "sibling blocks still compute")
}

func TestPlanningOrchestrator_NoValidMaterials(t *testing.T) {
	repo := memory.NewSnapshotRepository()
	repo.SaveMaterials([]*entities.Material{testinghelpers.Material("M-1", -1)})
	orchestrator, _ := newOrchestrator(repo)

	_, err := orchestrator.DashboardSummary(context.Background())
	assert.True(t, errors.Is(err, kpi.ErrNoValidMaterials))
}

func TestPlanningOrchestrator_Insights(t *testing.T) {
	orchestrator, _ := newOrchestrator(testinghelpers.BuildPlantScenario())

	report, err := orchestrator.Insights(context.Background())
	require.NoError(t, err)

	// at risk, excess, dropped, late, top orders, overload, mean utilization, bottleneck
	require.Len(t, report.Insights, 8)
	assert.Equal(t, entities.SeverityHigh, report.Insights[0].Severity)
	assert.Equal(t, entities.SeverityMedium, report.Insights[1].Severity)
	assert.Equal(t, entities.AreaSystem, report.Insights[2].Area)
	assert.Equal(t, "Bottleneck resource: WC-01", report.Insights[7].Title)
}

func TestPlanningOrchestrator_CapacityReport(t *testing.T) {
	orchestrator, _ := newOrchestrator(testinghelpers.BuildPlantScenario())

	report, err := orchestrator.CapacityReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Insights, 3)
	assert.Equal(t, string(insights.CategoryBottleneck), report.Insights[0].Category)
	assert.Equal(t, string(insights.CategoryBalanced), report.Insights[1].Category)
	assert.Equal(t, string(insights.CategoryIdle), report.Insights[2].Category)
	assert.NotEmpty(t, report.Recommendations)
}

func TestPlanningOrchestrator_PlanningBoard(t *testing.T) {
	orchestrator, store := newOrchestrator(testinghelpers.BuildPlantScenario())

	board, err := orchestrator.PlanningBoard(context.Background(), "M-100", 4)
	require.NoError(t, err)

	assert.Equal(t, 240.0, board.BaseDemand)
	assert.Equal(t, 171.4, board.OpeningStock)
	assert.Equal(t, 150.0, board.Weeks[0].ExistingProduction, "O-2 is due in week 1")
	assert.Equal(t, 106.4, board.Weeks[0].NaturalStock)
	assert.Equal(t, []int{2, 3, 4}, board.StockOutWeeks)

	require.NotNil(t, board.Corrective)
	assert.Equal(t, 1, board.Corrective.Week)
	assert.Equal(t, 373.6, board.Corrective.Quantity)

	require.Len(t, board.Pegging, 2)
	assert.Equal(t, entities.OrderID("O-1"), board.Pegging[0].Order)
	assert.Equal(t, 5, board.Pegging[0].DelayDays)

	require.Len(t, board.Recommendations, 3)
	assert.Equal(t, entities.CategoryFollowUp, board.Recommendations[2].Category)

	// boards are read-only: nothing is appended to the event log
	all, _ := store.ReadAllEvents(0)
	assert.Empty(t, all)
}

type stockOutRecorder struct {
	seen []events.StockOutProjected
}

func (r *stockOutRecorder) CanHandle(eventType string) bool {
	return eventType == events.StockOutProjectedEvent
}

func (r *stockOutRecorder) Handle(event events.Event) error {
	r.seen = append(r.seen, event.Data().(events.StockOutProjected))
	return nil
}

func TestPlanningOrchestrator_RepeatedBoardsDoNotGrowLog(t *testing.T) {
	orchestrator, store := newOrchestrator(testinghelpers.BuildPlantScenario())
	recorder := &stockOutRecorder{}
	require.NoError(t, store.Subscribe([]string{events.StockOutProjectedEvent}, recorder))

	for i := 0; i < 100; i++ {
		_, err := orchestrator.PlanningBoard(context.Background(), "M-100", 4)
		require.NoError(t, err)
	}

	all, _ := store.ReadAllEvents(0)
	assert.Empty(t, all)
	stream, _ := store.ReadEvents(events.MaterialStream("M-100"), 0)
	assert.Empty(t, stream)

	require.Len(t, recorder.seen, 100)
	assert.Equal(t, entities.MaterialID("M-100"), recorder.seen[0].Material)
	assert.Equal(t, 2, recorder.seen[0].FirstWeek)
	assert.Equal(t, 373.6, recorder.seen[0].CorrectiveQuantity)
}

func TestPlanningOrchestrator_PlanningBoardErrors(t *testing.T) {
	orchestrator, store := newOrchestrator(testinghelpers.BuildPlantScenario())
	ctx := context.Background()

	_, err := orchestrator.PlanningBoard(ctx, "", 4)
	assert.True(t, errors.Is(err, planning.ErrMaterialRequired))

	_, err = orchestrator.PlanningBoard(ctx, "M-999", 4)
	assert.True(t, errors.Is(err, planning.ErrMaterialNotFound))

	// no stock-out, nothing published
	board, err := orchestrator.PlanningBoard(ctx, "M-200", 8)
	require.NoError(t, err)
	assert.False(t, board.HasStockOut())
	assert.Nil(t, board.Corrective)

	board, err = orchestrator.PlanningBoard(ctx, "M-200", 0)
	require.NoError(t, err)
	assert.Equal(t, planning.MinHorizonWeeks, board.HorizonWeeks)

	all, _ := store.ReadAllEvents(0)
	assert.Empty(t, all)
}
