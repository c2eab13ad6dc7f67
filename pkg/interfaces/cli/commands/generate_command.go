package commands

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// GenerateConfig holds configuration for demo extract generation
type GenerateConfig struct {
	Materials int     // Number of material rows
	Orders    int     // Number of production orders
	Resources int     // Number of work centers
	AtRisk    float64 // Share of materials below 15 days of coverage
	OutputDir string  // Output directory for generated files
	Seed      int64   // Random seed for reproducible generation
	Verbose   bool
	Today     time.Time // Reference date for due dates; zero means now
	Out       io.Writer
}

// GenerateCommand writes synthetic MD04, COHV and work center extracts in
// the layout the SAP exports use
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.Today.IsZero() {
		config.Today = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if err := cmd.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.config.Out, "Generating %d materials, %d orders, %d work centers in %s\n",
			cmd.config.Materials, cmd.config.Orders, cmd.config.Resources, cmd.config.OutputDir)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	materials := cmd.materialIDs()

	steps := []struct {
		file  string
		write func(io.Writer, []string)
	}{
		{"materials.csv", cmd.writeMaterials},
		{"orders.csv", cmd.writeOrders},
		{"resources.csv", cmd.writeResources},
	}
	for _, step := range steps {
		if err := cmd.writeFile(step.file, func(w io.Writer) { step.write(w, materials) }); err != nil {
			return fmt.Errorf("failed to generate %s: %w", step.file, err)
		}
		if cmd.config.Verbose {
			fmt.Fprintf(cmd.config.Out, "  wrote %s\n", step.file)
		}
	}
	return nil
}

func (cmd *GenerateCommand) validate() error {
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if cmd.config.Materials <= 0 {
		return fmt.Errorf("materials must be positive, got %d", cmd.config.Materials)
	}
	if cmd.config.Orders < 0 || cmd.config.Resources < 0 {
		return fmt.Errorf("orders and resources cannot be negative")
	}
	if cmd.config.AtRisk < 0 || cmd.config.AtRisk > 1 {
		return fmt.Errorf("at-risk share must be between 0 and 1, got %.2f", cmd.config.AtRisk)
	}
	return nil
}

func (cmd *GenerateCommand) writeFile(name string, fill func(io.Writer)) error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, name))
	if err != nil {
		return err
	}
	fill(file)
	return file.Close()
}

func (cmd *GenerateCommand) materialIDs() []string {
	ids := make([]string, cmd.config.Materials)
	for i := range ids {
		ids[i] = fmt.Sprintf("MAT-%05d", 10000+i*10)
	}
	return ids
}

// decimal formats v with a decimal comma, as the Brazilian exports do
func decimal(v float64) string {
	return strings.Replace(fmt.Sprintf("%.1f", v), ".", ",", 1)
}

func (cmd *GenerateCommand) writeMaterials(w io.Writer, materials []string) {
	fmt.Fprintln(w, "Material;Texto breve material;CoberEstq.")

	atRisk := int(float64(len(materials)) * cmd.config.AtRisk)
	for i, id := range materials {
		var coverage float64
		switch {
		case i < atRisk:
			coverage = cmd.rand.Float64() * 15
		case cmd.rand.Intn(5) == 0:
			coverage = 45 + cmd.rand.Float64()*60
		default:
			coverage = 15 + cmd.rand.Float64()*30
		}
		fmt.Fprintf(w, "%s;Componente %d;%s\n", id, i+1, decimal(coverage))
	}
}

var orderStatuses = []string{"LIB", "LIB CONF", "ABER", "REL CRTD", "ENTE", "TECO"}

func (cmd *GenerateCommand) writeOrders(w io.Writer, materials []string) {
	fmt.Fprintln(w, "Ordem;Material;Data fim;Status do sistema;Quantidade base")

	for i := 0; i < cmd.config.Orders; i++ {
		material := materials[cmd.rand.Intn(len(materials))]
		// due dates from three weeks back to eight weeks ahead
		due := cmd.config.Today.AddDate(0, 0, cmd.rand.Intn(77)-21)
		status := orderStatuses[cmd.rand.Intn(len(orderStatuses))]
		quantity := float64(10 * (1 + cmd.rand.Intn(50)))

		fmt.Fprintf(w, "%d;%s;%s;%s;%s\n",
			1000000+i, material, due.Format("02/01/2006"), status, decimal(quantity))
	}
}

var plants = []string{"1001", "1002", "2001"}

func (cmd *GenerateCommand) writeResources(w io.Writer, _ []string) {
	// work center exports come with a blank first row
	fmt.Fprintln(w, ";;")
	fmt.Fprintln(w, "Recurso;Centro;Grau utilização em %")

	for i := 0; i < cmd.config.Resources; i++ {
		utilization := 40 + cmd.rand.Float64()*90
		fmt.Fprintf(w, "WC-%03d;%s;%s\n", i+1, plants[cmd.rand.Intn(len(plants))], decimal(utilization))
	}
}
