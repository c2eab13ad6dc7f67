package services

import (
	"testing"
	"time"

	"github.com/vsinha/planboard/pkg/domain/entities"
)

func TestScoreMaterial(t *testing.T) {
	testCases := []struct {
		name     string
		coverage entities.Value[float64]
		expected float64
	}{
		{"missing coverage", entities.Missing[float64](), 50.0},
		{"unparseable coverage", entities.Unparsed[float64]("abc"), 50.0},
		{"negative coverage", entities.Known(-3.0), 100.0},
		{"zero coverage", entities.Known(0.0), 100.0},
		{"five days", entities.Known(5.0), 92.9},
		{"seven days", entities.Known(7.0), 90.0},
		{"eleven days", entities.Known(11.0), 80.0},
		{"fifteen days", entities.Known(15.0), 70.0},
		{"thirty days", entities.Known(30.0), 50.0},
		{"forty five days", entities.Known(45.0), 30.0},
		{"sixty days", entities.Known(60.0), 25.5},
		{"very large coverage", entities.Known(500.0), 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScoreMaterial(tc.coverage); got != tc.expected {
				t.Errorf("Expected score %.1f, got %.1f", tc.expected, got)
			}
		})
	}
}

func TestScoreMaterial_MonotoneAndBounded(t *testing.T) {
	previous := ScoreMaterial(entities.Known(-10.0))
	for c := -10.0; c <= 200; c += 0.25 {
		score := ScoreMaterial(entities.Known(c))
		if score < 0 || score > 100 {
			t.Fatalf("Score %.1f for coverage %.2f is out of bounds", score, c)
		}
		if score > previous {
			t.Fatalf("Score increased from %.1f to %.1f at coverage %.2f", previous, score, c)
		}
		previous = score
	}
}

func TestScoreMaterial_ContinuousAtBreakpoints(t *testing.T) {
	for _, bp := range []float64{CoverageAtRiskDays, CoverageTightDays, CoverageExcessDays} {
		below := ScoreMaterial(entities.Known(bp - 0.001))
		at := ScoreMaterial(entities.Known(bp))
		above := ScoreMaterial(entities.Known(bp + 0.001))
		if below-at > 0.1 || at-above > 0.1 {
			t.Errorf("Score jumps at breakpoint %.0f: %.1f / %.1f / %.1f", bp, below, at, above)
		}
	}
}

func TestScoreOrder(t *testing.T) {
	today := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	daysAgo := func(n int) entities.Value[time.Time] {
		return entities.Known(today.AddDate(0, 0, -n))
	}

	testCases := []struct {
		name     string
		signal   OrderSignal
		expected float64
	}{
		{
			"closed order thirty days late",
			OrderSignal{Status: "REL TECO", DueDate: daysAgo(30), MaterialScore: entities.Known(100.0)},
			0.0,
		},
		{
			"on time without material",
			OrderSignal{Status: "REL", DueDate: daysAgo(0)},
			12.0,
		},
		{
			"two days late",
			OrderSignal{Status: "REL", DueDate: daysAgo(2)},
			42.0,
		},
		{
			"five days late with critical material",
			OrderSignal{Status: "REL", DueDate: daysAgo(5), MaterialScore: entities.Known(90.0)},
			84.6,
		},
		{
			"explicit delay wins over due date",
			OrderSignal{Status: "REL", DelayDays: entities.Known(11), DueDate: daysAgo(1)},
			60.0,
		},
		{
			"negative explicit delay clamps to zero",
			OrderSignal{Status: "REL", DelayDays: entities.Known(-4)},
			12.0,
		},
		{
			"no delay information",
			OrderSignal{Status: "REL", MaterialScore: entities.Known(50.0)},
			32.0,
		},
		{
			"future due date",
			OrderSignal{Status: "REL", DueDate: entities.Known(today.AddDate(0, 0, 10))},
			12.0,
		},
		{
			"very late with maximum material",
			OrderSignal{Status: "REL", DueDate: daysAgo(60), MaterialScore: entities.Known(100.0)},
			100.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.signal.Today = today
			if got := ScoreOrder(tc.signal); got != tc.expected {
				t.Errorf("Expected score %.1f, got %.1f", tc.expected, got)
			}
		})
	}
}

func TestScoreOrder_MonotoneInDelay(t *testing.T) {
	today := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	previous := -1.0
	for d := 0; d <= 30; d++ {
		score := ScoreOrder(OrderSignal{
			Status:        "REL",
			DelayDays:     entities.Known(d),
			MaterialScore: entities.Known(70.0),
			Today:         today,
		})
		if score < previous {
			t.Fatalf("Score decreased from %.1f to %.1f at delay %d", previous, score, d)
		}
		previous = score
	}
}

func TestScoreResource(t *testing.T) {
	testCases := []struct {
		name        string
		utilization entities.Value[float64]
		expected    float64
	}{
		{"missing utilization", entities.Missing[float64](), 10.0},
		{"idle", entities.Known(40.0), 10.0},
		{"seventy percent", entities.Known(70.0), 30.0},
		{"eighty percent", entities.Known(80.0), 40.0},
		{"ninety percent", entities.Known(90.0), 50.0},
		{"ninety five percent", entities.Known(95.0), 62.5},
		{"full", entities.Known(100.0), 75.0},
		{"overloaded", entities.Known(110.0), 90.0},
		{"heavily overloaded", entities.Known(150.0), 100.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScoreResource(tc.utilization); got != tc.expected {
				t.Errorf("Expected score %.1f, got %.1f", tc.expected, got)
			}
		})
	}
}

func TestScoreResource_SegmentOrdering(t *testing.T) {
	low := ScoreResource(entities.Known(69.9))
	mid := ScoreResource(entities.Known(89.9))
	high := ScoreResource(entities.Known(100.0))
	over := ScoreResource(entities.Known(100.1))

	if !(low <= mid && mid <= high && high <= over) {
		t.Errorf("Expected ordered segment scores, got %.1f <= %.1f <= %.1f <= %.1f", low, mid, high, over)
	}
}

func TestSignalFor(t *testing.T) {
	today := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	order, err := entities.NewProductionOrder("1", "MAT-1", entities.Known(today), "REL", entities.Missing[float64]())
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	signal := SignalFor(order, map[entities.MaterialID]float64{"MAT-1": 90}, today)
	if score, ok := signal.MaterialScore.Get(); !ok || score != 90 {
		t.Errorf("Expected material score 90, got %.1f (valid=%v)", score, ok)
	}

	signal = SignalFor(order, map[entities.MaterialID]float64{"MAT-2": 90}, today)
	if signal.MaterialScore.IsValid() {
		t.Errorf("Expected no material score for unknown material")
	}
}

func TestPercentAndRound(t *testing.T) {
	testCases := []struct {
		count, total int
		expected     float64
	}{
		{1, 3, 33.33},
		{2, 3, 66.67},
		{0, 10, 0},
		{5, 0, 0},
		{10, 10, 100},
		{1, 8, 12.5},
	}
	for _, tc := range testCases {
		if got := Percent(tc.count, tc.total); got != tc.expected {
			t.Errorf("Expected Percent(%d, %d) = %.2f, got %.2f", tc.count, tc.total, tc.expected, got)
		}
	}

	if got := Round(171.42857, 1); got != 171.4 {
		t.Errorf("Expected 171.4, got %v", got)
	}
	if got := Round(-0.05, 1); got != -0.1 {
		t.Errorf("Expected -0.1, got %v", got)
	}
}
