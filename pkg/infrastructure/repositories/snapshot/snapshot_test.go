package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/repositories"
	"github.com/vsinha/planboard/pkg/infrastructure/storage"
	"github.com/vsinha/planboard/pkg/infrastructure/tabular"
)

const cohv = "Ordem;Material;Data fim;Status do sistema;Quantidade base;Dias Atraso\n" +
	"1000001;M-1;01/03/2024;LIB;120;3\n" +
	"1000002;M-1;08.03.2024;TECO;40,5;\n" +
	";M-2;2024-03-10;LIB;10;\n" +
	"1000003;M-2;soon;LIB;-5;\n" +
	"1000004;M-2;45366;LIB;;\n"

func TestDecoder_Decode(t *testing.T) {
	d := NewDecoder()

	table, err := d.Decode("COHV.CSV", []byte(cohv))
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())

	_, err = d.Decode("cohv.pdf", []byte(cohv))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = d.Decode("cohv.xlsx", []byte(cohv))
	assert.Error(t, err, "delimited text is not a workbook")
}

func TestOrdersFromTable(t *testing.T) {
	table, err := NewDecoder().Decode("cohv.txt", []byte(cohv))
	require.NoError(t, err)

	orders, skipped, err := OrdersFromTable(table)
	require.NoError(t, err)

	// empty order id and negative quantity are skipped
	require.Len(t, skipped, 2)
	assert.Equal(t, 3, skipped[0].Row)
	assert.Equal(t, 4, skipped[1].Row)
	require.Len(t, orders, 3)

	first := orders[0]
	assert.Equal(t, entities.OrderID("1000001"), first.ID)
	due, ok := first.DueDate.Get()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), due)
	delay, ok := first.DelayDays.Get()
	require.True(t, ok)
	assert.Equal(t, 3, delay)

	second := orders[1]
	assert.True(t, second.IsClosed())
	qty, ok := second.Quantity.Get()
	require.True(t, ok)
	assert.Equal(t, 40.5, qty)
	assert.Equal(t, entities.Absent, second.DelayDays.State())

	serial := orders[2]
	due, ok = serial.DueDate.Get()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), due)
	assert.Equal(t, entities.Absent, serial.Quantity.State())
}

func TestOrdersFromTable_MissingColumn(t *testing.T) {
	table := tabular.NewTable([]string{"Ordem", "Material", "Status"}, [][]string{{"1", "M-1", "LIB"}})

	_, _, err := OrdersFromTable(table)
	assert.True(t, errors.Is(err, tabular.ErrFieldNotFound))
	assert.Contains(t, err.Error(), "due date")
}

func TestMaterialsFromTable(t *testing.T) {
	table := tabular.NewTable(
		[]string{"Material", "CoberEstq."},
		[][]string{{"M-1", "5"}, {"M-2", "n/a"}, {"", "12"}, {"M-3", ""}},
	)

	materials, skipped, err := MaterialsFromTable(table)
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	require.Len(t, materials, 3)

	assert.Equal(t, entities.Valid, materials[0].CoverageDays.State())
	assert.Equal(t, entities.Invalid, materials[1].CoverageDays.State())
	assert.Equal(t, entities.Absent, materials[2].CoverageDays.State())
}

func TestResourcesFromTable_PromotesHeader(t *testing.T) {
	table := tabular.NewTable(
		[]string{"Unnamed: 0", "Unnamed: 1", ""},
		[][]string{
			{"Recurso", "Centro", "Grau utilização em %"},
			{"WC-01", "P100", "95,5"},
			{"WC-02", "P100", "62"},
		},
	)

	resources, skipped, err := ResourcesFromTable(table)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, resources, 2)

	assert.Equal(t, entities.ResourceID("WC-01"), resources[0].ID)
	assert.Equal(t, "P100", resources[0].Plant)
	util, ok := resources[0].Utilization.Get()
	require.True(t, ok)
	assert.Equal(t, 95.5, util)
}

func TestValidate(t *testing.T) {
	materials := tabular.NewTable([]string{"Material", "Cobertura"}, [][]string{{"M-1", "5"}})

	assert.NoError(t, Validate(entities.KindMaterials, materials))
	assert.Error(t, Validate(entities.KindOrders, materials))
	assert.Error(t, Validate(entities.KindResources, materials))
	assert.Error(t, Validate("bogus", materials))
}

func TestRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemoryStorage(), nil)

	_, err := repo.LoadMaterials(ctx)
	assert.True(t, errors.Is(err, repositories.ErrSnapshotNotFound))

	table := tabular.NewTable([]string{"Material", "CoberEstq"}, [][]string{{"M-1", "5"}, {"M-2", "60"}})
	uploadedAt := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, NewEnvelope("snap-1", entities.KindMaterials, "md04.csv", uploadedAt, table)))

	env, err := repo.Load(ctx, entities.KindMaterials)
	require.NoError(t, err)
	assert.Equal(t, "snap-1", env.ID)
	assert.Equal(t, "md04.csv", env.Filename)
	assert.True(t, env.UploadedAt.Equal(uploadedAt))

	materials, err := repo.LoadMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, materials, 2)
	assert.Equal(t, entities.MaterialID("M-2"), materials[1].ID)

	_, err = repo.LoadOrders(ctx)
	assert.True(t, errors.Is(err, repositories.ErrSnapshotNotFound))
}

func TestUnmarshalEnvelope_Invalid(t *testing.T) {
	_, err := UnmarshalEnvelope([]byte("{"))
	assert.Error(t, err)

	_, err = UnmarshalEnvelope([]byte(`{"id":"x"}`))
	assert.Error(t, err)
}
