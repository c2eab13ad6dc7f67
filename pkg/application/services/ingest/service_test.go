package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/repositories"
	"github.com/vsinha/planboard/pkg/domain/services"
	"github.com/vsinha/planboard/pkg/infrastructure/events"
	"github.com/vsinha/planboard/pkg/infrastructure/repositories/snapshot"
	"github.com/vsinha/planboard/pkg/infrastructure/storage"
)

var uploadTime = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

func newTestService() (*Service, *snapshot.Repository, *events.InMemoryEventStore) {
	repo := snapshot.NewRepository(storage.NewMemoryStorage(), nil)
	store := events.NewInMemoryEventStore(nil)
	return NewService(repo, store, services.FixedClock{Day: uploadTime}, nil), repo, store
}

func TestService_Upload(t *testing.T) {
	svc, repo, store := newTestService()
	ctx := context.Background()

	data := "Material;CoberEstq\n"
	for i := 0; i < 12; i++ {
		data += "M-" + string(rune('A'+i)) + ";10\n"
	}

	receipt, err := svc.Upload(ctx, "md04", "md04.csv", []byte(data))
	require.NoError(t, err)

	assert.Equal(t, entities.KindMaterials, receipt.Kind)
	assert.NotEmpty(t, receipt.SnapshotID)
	assert.Equal(t, 12, receipt.Rows)
	assert.Equal(t, []string{"Material", "CoberEstq"}, receipt.Columns)
	assert.Len(t, receipt.Preview, PreviewRows)
	assert.Equal(t, "M-A", receipt.Preview[0]["Material"])
	assert.True(t, receipt.UploadedAt.Equal(uploadTime))

	materials, err := repo.LoadMaterials(ctx)
	require.NoError(t, err)
	assert.Len(t, materials, 12)

	recorded, _ := store.ReadEvents(events.SnapshotStream(entities.KindMaterials), 1)
	require.Len(t, recorded, 1)
	assert.Equal(t, receipt.SnapshotID, recorded[0].Data().(events.SnapshotReplaced).SnapshotID)
}

func TestService_Upload_ReplacesWholesale(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upload(ctx, entities.KindMaterials, "first.csv", []byte("Material,CoberEstq\nM-1,5\nM-2,6\n"))
	require.NoError(t, err)
	_, err = svc.Upload(ctx, entities.KindMaterials, "second.csv", []byte("Material,CoberEstq\nM-3,50\n"))
	require.NoError(t, err)

	materials, err := repo.LoadMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, entities.MaterialID("M-3"), materials[0].ID)
}

func TestService_Upload_PromotesResourceHeader(t *testing.T) {
	svc, _, _ := newTestService()

	data := ";;\nRecurso;Centro;Grau utilização em %\nWC-01;P100;95\n"
	receipt, err := svc.Upload(context.Background(), entities.KindResources, "centros.csv", []byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Recurso", "Centro", "Grau utilização em %"}, receipt.Columns)
	assert.Equal(t, 1, receipt.Rows)
}

func TestService_Upload_Rejects(t *testing.T) {
	svc, repo, store := newTestService()
	ctx := context.Background()

	testCases := []struct {
		name     string
		kind     entities.SnapshotKind
		filename string
		data     string
		target   error
	}{
		{"unknown kind", "inventory", "x.csv", "Material,CoberEstq\nM-1,5\n", entities.ErrUnknownSnapshotKind},
		{"bad extension", entities.KindMaterials, "md04.pdf", "Material,CoberEstq\nM-1,5\n", snapshot.ErrUnsupportedFormat},
		{"empty file", entities.KindMaterials, "md04.csv", "", ErrEmptyUpload},
		{"header only", entities.KindMaterials, "md04.csv", "Material,CoberEstq\n", ErrInvalidFile},
		{"missing column", entities.KindOrders, "cohv.csv", "Ordem,Material\n1,M-1\n", ErrInvalidFile},
		{"corrupt workbook", entities.KindMaterials, "md04.xlsx", "PK\x03\x04garbage", ErrInvalidFile},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tc.kind, tc.filename, []byte(tc.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.target), "expected %v, got %v", tc.target, err)
		})
	}

	_, err := repo.LoadMaterials(ctx)
	assert.True(t, errors.Is(err, repositories.ErrSnapshotNotFound), "rejected uploads must not be stored")

	all, _ := store.ReadAllEvents(0)
	assert.Empty(t, all)
}

func TestService_History(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	history, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = svc.Upload(ctx, entities.KindMaterials, "md04.csv", []byte("Material,CoberEstq\nM-1,5\n"))
	require.NoError(t, err)
	_, err = svc.Upload(ctx, entities.KindOrders, "cohv.csv", []byte("Ordem,Material,Data fim,Status\n1,M-1,2024-03-01,LIB\n"))
	require.NoError(t, err)
	_, err = svc.Upload(ctx, entities.KindMaterials, "md04-v2.csv", []byte("Material,CoberEstq\nM-1,5\nM-2,9\n"))
	require.NoError(t, err)

	history, err = svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, "md04-v2.csv", history[0].Filename)
	assert.Equal(t, 2, history[0].Version)
	assert.Equal(t, 2, history[0].Rows)
	assert.Equal(t, entities.KindOrders, history[1].Kind)
	assert.Equal(t, 1, history[1].Version)
	assert.Equal(t, "md04.csv", history[2].Filename)

	current, err := svc.Current(ctx, entities.KindMaterials)
	require.NoError(t, err)
	assert.Equal(t, "md04-v2.csv", current.Filename)
	assert.Equal(t, 2, current.Rows)
}
