package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/planboard/pkg/application/dto"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatSVG  = "svg"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Name is the base file name used by the file formats
	Name   string
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate renders result, one of the dashboard, insight, capacity, board or
// upload DTOs, in the configured format
func Generate(result interface{}, config Config) error {
	switch config.Format {
	case FormatText, "":
		return generateTextOutput(result, config.writer())
	case FormatJSON:
		return generateJSONOutput(result, config)
	case FormatXLSX:
		return generateWorkbook(result, config)
	case FormatSVG:
		board, ok := result.(*dto.PlanningBoard)
		if !ok {
			return fmt.Errorf("svg output is only available for planning boards")
		}
		return writeFile(config, config.fileName("svg"), []byte(NewStockChart(board).GenerateSVG(board)))
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateJSONOutput(result interface{}, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}
	return writeFile(config, config.fileName("json"), jsonData)
}

func (c Config) fileName(ext string) string {
	name := c.Name
	if name == "" {
		name = "planboard"
	}
	return name + "." + ext
}

func writeFile(config Config, name string, data []byte) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for %s format", config.Format)
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, name)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "Results saved to: %s\n", filename)
	}
	return nil
}

func generateTextOutput(result interface{}, w io.Writer) error {
	switch r := result.(type) {
	case *dto.DashboardSummary:
		writeDashboard(w, r)
	case *dto.InsightsReport:
		writeInsights(w, r)
	case *dto.CapacityReport:
		writeCapacity(w, r)
	case *dto.PlanningBoard:
		writeBoard(w, r)
	case *dto.UploadReceipt:
		writeReceipt(w, r)
	case []dto.UploadRecord:
		writeHistory(w, r)
	default:
		return fmt.Errorf("no text rendering for %T", result)
	}
	return nil
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))
}

func writeDashboard(w io.Writer, s *dto.DashboardSummary) {
	heading(w, "Dashboard Summary")

	m := s.Materials
	fmt.Fprintf(w, "Materials: %d (at risk %d / %.2f%%, excess %d / %.2f%%, normal %d, dropped %d)\n",
		m.Total, m.AtRisk, m.AtRiskPct, m.Excess, m.ExcessPct, m.Normal, m.Dropped)
	if len(m.Top) > 0 {
		fmt.Fprintf(w, "%-20s %-10s %-8s\n", "Material", "Coverage", "Score")
		fmt.Fprintf(w, "%-20s %-10s %-8s\n", "--------------------", "----------", "--------")
		for _, item := range m.Top {
			fmt.Fprintf(w, "%-20s %-10.1f %-8.1f\n", item.Material, item.CoverageDays, item.Score)
		}
	}
	fmt.Fprintln(w)

	if o := s.Orders; o != nil {
		fmt.Fprintf(w, "Orders: %d (late %d / %.2f%%, dropped %d)\n", o.Total, o.Late, o.LatePct, o.Dropped)
		if len(o.Top) > 0 {
			fmt.Fprintf(w, "%-12s %-20s %-12s %-10s %-6s %-8s\n", "Order", "Material", "Due Date", "Status", "Delay", "Score")
			fmt.Fprintf(w, "%-12s %-20s %-12s %-10s %-6s %-8s\n",
				"------------", "--------------------", "------------", "----------", "------", "--------")
			for _, item := range o.Top {
				fmt.Fprintf(w, "%-12s %-20s %-12s %-10s %-6d %-8.1f\n",
					item.Order, item.Material, item.DueDate.Format("2006-01-02"), item.Status, item.DelayDays, item.Score)
			}
		}
		fmt.Fprintln(w)
	}

	if r := s.Resources; r != nil && r.Summary != nil {
		fmt.Fprintf(w, "Work centers: %d (<90%% %d, 90-100%% %d, >100%% %d)",
			r.Summary.Total, r.Summary.Below90, r.Summary.Between90And100, r.Summary.Above100)
		if r.Summary.MeanUtilization != nil {
			fmt.Fprintf(w, ", mean %.1f%%", *r.Summary.MeanUtilization)
		}
		fmt.Fprintf(w, ", dropped %d\n", r.Dropped)
		for _, item := range r.Top {
			fmt.Fprintf(w, "  %-12s %-8s %6.1f%% score %.1f\n", item.Resource, item.Plant, item.Utilization, item.Score)
		}
		fmt.Fprintln(w)
	}

	for _, warning := range s.Warnings {
		fmt.Fprintf(w, "Warning: %s block unavailable: %s\n", warning.Block, warning.Message)
	}
}

func writeInsights(w io.Writer, r *dto.InsightsReport) {
	heading(w, "Insights")
	for _, insight := range r.Insights {
		fmt.Fprintf(w, "[%s] %s\n", insight.Severity, insight.Title)
		fmt.Fprintf(w, "    %s\n", insight.Detail)
		if insight.Suggestion != "" {
			fmt.Fprintf(w, "    -> %s\n", insight.Suggestion)
		}
	}
}

func writeCapacity(w io.Writer, r *dto.CapacityReport) {
	heading(w, "Capacity")
	fmt.Fprintf(w, "%-12s %-8s %-8s %-8s %-12s\n", "Resource", "Plant", "Util %", "Score", "Category")
	fmt.Fprintf(w, "%-12s %-8s %-8s %-8s %-12s\n", "------------", "--------", "--------", "--------", "------------")
	for _, item := range r.Insights {
		fmt.Fprintf(w, "%-12s %-8s %-8.1f %-8.1f %-12s\n", item.Resource, item.Plant, item.Utilization, item.Score, item.Category)
	}
	fmt.Fprintln(w)
	for _, rec := range r.Recommendations {
		fmt.Fprintf(w, "- %s\n", rec)
	}
}

func writeBoard(w io.Writer, b *dto.PlanningBoard) {
	heading(w, fmt.Sprintf("Planning Board: %s", b.Material))
	fmt.Fprintf(w, "Horizon: %d weeks  Base demand: %.1f  Opening stock: %.1f  Score: %.1f\n\n",
		b.HorizonWeeks, b.BaseDemand, b.OpeningStock, b.MaterialScore)

	fmt.Fprintf(w, "%-6s %-10s %-10s %-10s %-10s %-10s\n", "Week", "Demand", "Existing", "Corrective", "Natural", "Projected")
	fmt.Fprintf(w, "%-6s %-10s %-10s %-10s %-10s %-10s\n", "------", "----------", "----------", "----------", "----------", "----------")
	for _, slot := range b.Weeks {
		fmt.Fprintf(w, "%-6s %-10.1f %-10.1f %-10.1f %-10.1f %-10.1f\n",
			slot.Label, slot.Demand, slot.ExistingProduction, slot.CorrectiveProduction, slot.NaturalStock, slot.PostInterventionStock)
	}
	fmt.Fprintln(w)

	if b.Corrective != nil {
		fmt.Fprintf(w, "Corrective order: %.1f in %s\n\n", b.Corrective.Quantity, b.Corrective.Label)
	}

	if len(b.Pegging) > 0 {
		fmt.Fprintf(w, "Pegged orders:\n")
		for _, p := range b.Pegging {
			fmt.Fprintf(w, "  %-12s %-12s %-10s %8.1f delay %d\n", p.Order, p.DueDate.Format("2006-01-02"), p.Status, p.Quantity, p.DelayDays)
		}
		fmt.Fprintln(w)
	}

	for _, rec := range b.Recommendations {
		fmt.Fprintf(w, "[%s] %s: %s\n", rec.Severity, rec.Title, rec.Detail)
	}
}

func writeReceipt(w io.Writer, r *dto.UploadReceipt) {
	fmt.Fprintf(w, "Stored %s snapshot %s from %s (%d rows)\n", r.Kind, r.SnapshotID, r.Filename, r.Rows)
	fmt.Fprintf(w, "Columns: %s\n", strings.Join(r.Columns, ", "))
}

func writeHistory(w io.Writer, records []dto.UploadRecord) {
	fmt.Fprintf(w, "%-10s %-8s %-30s %-6s %-20s\n", "Kind", "Version", "File", "Rows", "Uploaded")
	for _, rec := range records {
		fmt.Fprintf(w, "%-10s %-8d %-30s %-6d %-20s\n",
			rec.Kind, rec.Version, rec.Filename, rec.Rows, rec.UploadedAt.Format("2006-01-02 15:04:05"))
	}
}
