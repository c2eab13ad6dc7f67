// Package ingest accepts uploaded planning extracts and replaces the stored
// snapshot of their kind.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vsinha/planboard/pkg/application/dto"
	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/services"
	"github.com/vsinha/planboard/pkg/infrastructure/events"
	"github.com/vsinha/planboard/pkg/infrastructure/repositories/snapshot"
	"github.com/vsinha/planboard/pkg/infrastructure/tabular"
)

// PreviewRows is the number of rows echoed back by an upload
const PreviewRows = 10

var (
	ErrEmptyUpload = errors.New("uploaded file is empty")
	ErrInvalidFile = errors.New("invalid extract")
)

type Service struct {
	repo    *snapshot.Repository
	decoder *snapshot.Decoder
	events  events.EventStore
	clock   services.Clock
	logger  *slog.Logger
}

func NewService(repo *snapshot.Repository, eventStore events.EventStore, clock services.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = services.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:    repo,
		decoder: snapshot.NewDecoder(),
		events:  eventStore,
		clock:   clock,
		logger:  logger,
	}
}

// Upload decodes data, checks it carries the columns its kind needs and
// replaces the stored snapshot of that kind
func (s *Service) Upload(ctx context.Context, kind entities.SnapshotKind, filename string, data []byte) (*dto.UploadReceipt, error) {
	kind, err := entities.ParseSnapshotKind(string(kind))
	if err != nil {
		return nil, err
	}
	if err := snapshot.CheckExtension(filename); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	table, err := s.decoder.Decode(filename, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if kind == entities.KindResources {
		table = tabular.PromoteHeader(table)
	}
	if err := snapshot.Validate(kind, table); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	env := snapshot.NewEnvelope(uuid.NewString(), kind, filename, s.clock.Now(), table)
	if err := s.repo.Save(ctx, env); err != nil {
		return nil, fmt.Errorf("failed to store %s snapshot: %w", kind, err)
	}

	stream := events.SnapshotStream(kind)
	replaced := events.SnapshotReplaced{
		SnapshotID: env.ID,
		Kind:       kind,
		Filename:   filename,
		Rows:       table.Len(),
		UploadedAt: env.UploadedAt,
	}
	if _, err := s.events.AppendEvent(stream, events.NewEvent(events.SnapshotReplacedEvent, stream, replaced, env.UploadedAt)); err != nil {
		// the snapshot is already stored; only the history entry is lost
		s.logger.Error("failed to record upload", "kind", kind, "snapshot_id", env.ID, "error", err)
	}

	s.logger.Info("snapshot replaced", "kind", kind, "snapshot_id", env.ID, "filename", filename, "rows", table.Len())

	return &dto.UploadReceipt{
		SnapshotID: env.ID,
		Kind:       kind,
		Filename:   filename,
		Rows:       table.Len(),
		Columns:    table.Header(),
		Preview:    table.Preview(PreviewRows),
		UploadedAt: env.UploadedAt,
	}, nil
}

// History returns the uploads recorded by this process, newest first
func (s *Service) History(ctx context.Context) ([]dto.UploadRecord, error) {
	all, err := s.events.ReadAllEvents(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload history: %w", err)
	}

	records := make([]dto.UploadRecord, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		event := all[i]
		replaced, ok := event.Data().(events.SnapshotReplaced)
		if !ok || event.Type() != events.SnapshotReplacedEvent {
			continue
		}
		records = append(records, dto.UploadRecord{
			SnapshotID: replaced.SnapshotID,
			Kind:       replaced.Kind,
			Filename:   replaced.Filename,
			Rows:       replaced.Rows,
			UploadedAt: replaced.UploadedAt,
			Version:    event.Version(),
		})
	}
	return records, nil
}

// Current returns the stored envelope of kind without its rows
func (s *Service) Current(ctx context.Context, kind entities.SnapshotKind) (*dto.UploadRecord, error) {
	env, err := s.repo.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	return &dto.UploadRecord{
		SnapshotID: env.ID,
		Kind:       env.Kind,
		Filename:   env.Filename,
		Rows:       len(env.Rows),
		UploadedAt: env.UploadedAt,
	}, nil
}
