package commands

import (
	"context"
	"io"
	"os"

	"github.com/vsinha/planboard/pkg/domain/services"
	"github.com/vsinha/planboard/pkg/infrastructure/config"
	"github.com/vsinha/planboard/pkg/infrastructure/logging"
	"github.com/vsinha/planboard/pkg/interfaces/cli/output"
)

// Config holds the options shared by every command
type Config struct {
	ConfigPath string
	Format     string
	OutputDir  string
	Verbose    bool
	Out        io.Writer
	// Clock overrides "today"; nil uses the system clock
	Clock services.Clock
}

func (c Config) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c Config) output(name string) output.Config {
	return output.Config{
		Format:    c.Format,
		OutputDir: c.OutputDir,
		Verbose:   c.Verbose,
		Name:      name,
		Writer:    c.out(),
	}
}

// openApp loads the configuration file and wires the services. Logs go to
// stderr so stdout stays clean for json output.
func (c Config) openApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		cfg.Log.Level = "debug"
	}
	logger := logging.NewWithWriter(cfg.Log, os.Stderr)
	return NewApp(ctx, cfg, c.Clock, logger)
}
