package commands

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/planboard/pkg/interfaces/cli/output"
)

var version = "dev"

// NewRootCommand builds the planboard command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(Config{})
}

func newRootCommand(config Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "planboard",
		Short: "Production planning dashboard for SAP coverage, order and capacity extracts",
		Long: `planboard ingests MD04 coverage, COHV production order and work center
utilization extracts, scores material, order and resource criticality, and
projects weekly stock for a material with a corrective production order.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Out = cmd.OutOrStdout()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&config.ConfigPath, "config", "planboard.yaml", "Path to the configuration file")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(
		newServeCmd(&config),
		newUploadCmd(&config),
		newReportCmd(&config, ReportDashboard, "Show material, order and work center KPIs"),
		newReportCmd(&config, ReportInsights, "Show the dashboard insights"),
		newReportCmd(&config, ReportCapacity, "Classify work centers by utilization"),
		newBoardCmd(&config),
		newGenerateCmd(),
	)
	return rootCmd
}

func addOutputFlags(cmd *cobra.Command, config *Config) {
	cmd.Flags().StringVarP(&config.Format, "format", "f", output.FormatText, "Output format: text, json, xlsx, svg")
	cmd.Flags().StringVarP(&config.OutputDir, "output", "o", "", "Output directory for file formats")
}

func newServeCmd(config *Config) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeCommand(*config, addr).Execute(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

func newUploadCmd(config *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <kind> <file>",
		Short: "Store an extract as the current snapshot of its kind",
		Long: `Store an extract as the current snapshot of its kind.
Kinds: materials (md04), orders (cohv), resources (centros).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewUploadCommand(*config, args[0], args[1]).Execute(cmd.Context())
		},
	}
	addOutputFlags(cmd, config)
	return cmd
}

func newReportCmd(config *Config, report, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   report,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewReportCommand(*config, report).Execute(cmd.Context())
		},
	}
	addOutputFlags(cmd, config)
	return cmd
}

func newBoardCmd(config *Config) *cobra.Command {
	var horizon int
	cmd := &cobra.Command{
		Use:   "board <material>",
		Short: "Project the weekly stock of a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewBoardCommand(*config, args[0], horizon).Execute(cmd.Context())
		},
	}
	addOutputFlags(cmd, config)
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Horizon in weeks, 1 to 12 (default from config)")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var config GenerateConfig
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic extracts for demos and load tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Out = cmd.OutOrStdout()
			config.Verbose, _ = cmd.Flags().GetBool("verbose")
			return NewGenerateCommand(config).Execute(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&config.Materials, "materials", 200, "Number of materials")
	cmd.Flags().IntVar(&config.Orders, "orders", 500, "Number of production orders")
	cmd.Flags().IntVar(&config.Resources, "resources", 40, "Number of work centers")
	cmd.Flags().Float64Var(&config.AtRisk, "at-risk", 0.2, "Share of materials below 15 days of coverage")
	cmd.Flags().StringVarP(&config.OutputDir, "output", "o", "extracts", "Output directory")
	cmd.Flags().Int64Var(&config.Seed, "seed", 0, "Random seed (0 for time based)")
	return cmd
}
