package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vsinha/planboard/pkg/domain/entities"
)

// UploadCommand stores a local extract as the snapshot of its kind
type UploadCommand struct {
	config Config
	kind   string
	file   string
}

func NewUploadCommand(config Config, kind, file string) *UploadCommand {
	return &UploadCommand{config: config, kind: kind, file: file}
}

func (c *UploadCommand) Execute(ctx context.Context) error {
	data, err := os.ReadFile(c.file)
	if err != nil {
		return fmt.Errorf("failed to read extract: %w", err)
	}

	app, err := c.config.openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	receipt, err := app.Ingest.Upload(ctx, entities.SnapshotKind(c.kind), filepath.Base(c.file), data)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	return generate(receipt, c.config.output("upload_"+string(receipt.Kind)))
}
