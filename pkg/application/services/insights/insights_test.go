package insights

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/planboard/pkg/application/dto"
	"github.com/vsinha/planboard/pkg/domain/entities"
)

func ptr(v float64) *float64 { return &v }

func titles(insights []entities.Insight) []string {
	out := make([]string, 0, len(insights))
	for _, i := range insights {
		out = append(out, i.Title)
	}
	return out
}

func TestGenerate_AllClear(t *testing.T) {
	summary := &dto.DashboardSummary{
		Materials: &dto.MaterialKPIs{Total: 10, Normal: 10},
		Orders:    &dto.OrderKPIs{Total: 5},
		Resources: &dto.ResourceKPIs{},
	}

	got := Generate(summary)
	require.Len(t, got, 1)
	assert.Equal(t, entities.SeverityInfo, got[0].Severity)
	assert.Equal(t, entities.AreaSystem, got[0].Area)

	assert.Len(t, Generate(nil), 1)
}

func TestGenerate_MaterialSeverities(t *testing.T) {
	testCases := []struct {
		name     string
		kpis     dto.MaterialKPIs
		expected []entities.Severity
	}{
		{
			"at risk above threshold",
			dto.MaterialKPIs{Total: 50, AtRisk: 1, AtRiskPct: 2.0},
			[]entities.Severity{entities.SeverityHigh},
		},
		{
			"at risk below threshold",
			dto.MaterialKPIs{Total: 100, AtRisk: 1, AtRiskPct: 1.0},
			[]entities.Severity{entities.SeverityMedium},
		},
		{
			"excess above threshold",
			dto.MaterialKPIs{Total: 10, Excess: 1, ExcessPct: 10.0},
			[]entities.Severity{entities.SeverityMedium},
		},
		{
			"excess below threshold",
			dto.MaterialKPIs{Total: 20, Excess: 1, ExcessPct: 5.0},
			[]entities.Severity{entities.SeverityLow},
		},
		{
			"dropped rows",
			dto.MaterialKPIs{Total: 20, Dropped: 3},
			[]entities.Severity{entities.SeverityMedium},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kpis := tc.kpis
			got := Generate(&dto.DashboardSummary{Materials: &kpis})
			severities := make([]entities.Severity, 0, len(got))
			for _, i := range got {
				severities = append(severities, i.Severity)
			}
			assert.Equal(t, tc.expected, severities)
		})
	}
}

func TestGenerate_OrdersAndResources(t *testing.T) {
	summary := &dto.DashboardSummary{
		Materials: &dto.MaterialKPIs{Total: 10, Normal: 10},
		Orders: &dto.OrderKPIs{
			Total: 100, Late: 4, LatePct: 4.0,
			Top: []dto.ScoredOrder{{Order: "1"}},
		},
		Resources: &dto.ResourceKPIs{
			Summary: &dto.ResourceSummary{Total: 3, Above100: 1, MeanUtilization: ptr(90.0)},
			Top:     []dto.ScoredResource{{Resource: "WC9", Utilization: 120}},
		},
	}

	got := Generate(summary)
	assert.Equal(t, []string{
		"Late production orders",
		"Top critical orders by delay",
		"Overloaded resources",
		"Capacity utilization overview",
		"Bottleneck resource: WC9",
	}, titles(got))

	assert.Equal(t, entities.SeverityMedium, got[0].Severity, "4% late is below the high threshold")
	assert.Equal(t, entities.SeverityHigh, got[1].Severity)
	assert.Equal(t, entities.SeverityMedium, got[3].Severity, "mean 90% sits in the attention band")
	assert.Contains(t, got[4].Detail, "plant -")
}

func TestGenerate_MeanUtilizationOutsideBand(t *testing.T) {
	got := Generate(&dto.DashboardSummary{
		Resources: &dto.ResourceKPIs{Summary: &dto.ResourceSummary{Total: 1, Below90: 1, MeanUtilization: ptr(60.0)}},
	})
	require.Len(t, got, 1)
	assert.Equal(t, entities.SeverityInfo, got[0].Severity)
	assert.Equal(t, "Capacity utilization overview", got[0].Title)
}

func TestClassifyResource(t *testing.T) {
	testCases := []struct {
		utilization float64
		score       float64
		category    CapacityCategory
		escalated   bool
	}{
		{130, 100, CategoryBottleneck, true},
		{115, 70, CategoryBottleneck, false},
		{100, 75, CategoryHigh, false},
		{105, 82.5, CategoryHigh, true},
		{95, 62.5, CategoryBalanced, false},
		{70, 30, CategoryIdle, false},
		{20, 10, CategoryIdle, false},
	}

	for _, tc := range testCases {
		category, message := ClassifyResource(tc.utilization, tc.score)
		assert.Equal(t, tc.category, category, "utilization %.0f", tc.utilization)
		assert.Equal(t, tc.escalated, strings.Contains(message, "Prioritize a detailed review"), "utilization %.0f", tc.utilization)
	}
}

func TestCapacityReport(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	_, err := CapacityReport(&dto.ResourceKPIs{}, now)
	assert.ErrorIs(t, err, ErrNoCapacityData)
	_, err = CapacityReport(nil, now)
	assert.ErrorIs(t, err, ErrNoCapacityData)

	report, err := CapacityReport(&dto.ResourceKPIs{
		Summary: &dto.ResourceSummary{Total: 3, Below90: 1, Between90And100: 1, Above100: 1, MeanUtilization: ptr(95)},
		Top: []dto.ScoredResource{
			{Resource: "A", Utilization: 120, Score: 100},
			{Resource: "B", Utilization: 95, Score: 62.5},
			{Resource: "C", Utilization: 60, Score: 10},
		},
	}, now)
	require.NoError(t, err)

	require.Len(t, report.Insights, 3)
	assert.Equal(t, "bottleneck", report.Insights[0].Category)
	assert.Equal(t, "balanced", report.Insights[1].Category)
	assert.Equal(t, "idle", report.Insights[2].Category)
	require.Len(t, report.Recommendations, 3)
	assert.True(t, strings.HasPrefix(report.Recommendations[0], "1 resource(s) above 100%"))
	assert.Equal(t, now, report.GeneratedAt)
}
