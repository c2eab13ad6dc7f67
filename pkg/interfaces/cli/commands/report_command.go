package commands

import (
	"context"
	"fmt"

	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/interfaces/cli/output"
)

// Reports computed from the stored snapshots
const (
	ReportDashboard = "dashboard"
	ReportInsights  = "insights"
	ReportCapacity  = "capacity"
)

// ReportCommand prints one of the dashboard views
type ReportCommand struct {
	config Config
	report string
}

func NewReportCommand(config Config, report string) *ReportCommand {
	return &ReportCommand{config: config, report: report}
}

func (c *ReportCommand) Execute(ctx context.Context) error {
	app, err := c.config.openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	var result interface{}
	switch c.report {
	case ReportDashboard:
		result, err = app.Orchestrator.DashboardSummary(ctx)
	case ReportInsights:
		result, err = app.Orchestrator.Insights(ctx)
	case ReportCapacity:
		result, err = app.Orchestrator.CapacityReport(ctx)
	default:
		return fmt.Errorf("unknown report: %s", c.report)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", c.report, err)
	}
	return generate(result, c.config.output(c.report))
}

// BoardCommand prints the planning board of one material
type BoardCommand struct {
	config   Config
	material string
	horizon  int
}

// NewBoardCommand creates a board command; a horizon of 0 uses the
// configured default
func NewBoardCommand(config Config, material string, horizon int) *BoardCommand {
	return &BoardCommand{config: config, material: material, horizon: horizon}
}

func (c *BoardCommand) Execute(ctx context.Context) error {
	app, err := c.config.openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	horizon := c.horizon
	if horizon == 0 {
		horizon = app.Config.Planning.DefaultHorizonWeeks
	}

	board, err := app.Orchestrator.PlanningBoard(ctx, entities.MaterialID(c.material), horizon)
	if err != nil {
		return fmt.Errorf("planning board failed: %w", err)
	}
	return generate(board, c.config.output("board_"+c.material))
}

func generate(result interface{}, config output.Config) error {
	if err := output.Generate(result, config); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}
