package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vsinha/planboard/pkg/interfaces/api"
)

const shutdownTimeout = 10 * time.Second

// ServeCommand runs the HTTP API until its context is cancelled
type ServeCommand struct {
	config Config
	addr   string
}

// NewServeCommand creates a serve command; an empty addr uses the
// configured one
func NewServeCommand(config Config, addr string) *ServeCommand {
	return &ServeCommand{config: config, addr: addr}
}

func (c *ServeCommand) Execute(ctx context.Context) error {
	app, err := c.config.openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	addr := c.addr
	if addr == "" {
		addr = app.Config.Server.Addr
	}

	server := api.NewServer(app.Config, app.Orchestrator, app.Ingest, app.Metrics, app.Logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		app.Logger.Info("starting planboard", "addr", addr, "storage", app.Config.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
