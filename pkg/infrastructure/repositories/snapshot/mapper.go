package snapshot

import (
	"fmt"

	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/infrastructure/tabular"
)

// RowError describes a row that could not be mapped. Row is 1-based and
// counts data rows only.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// MaterialsFromTable maps the coverage extract. Unparseable coverage cells
// are kept as invalid values so the aggregator can count them.
func MaterialsFromTable(t *tabular.Table) ([]*entities.Material, []RowError, error) {
	materialCol, err := t.Resolve(tabular.FieldMaterial)
	if err != nil {
		return nil, nil, err
	}
	coverageCol, err := t.Resolve(tabular.FieldCoverage)
	if err != nil {
		return nil, nil, err
	}

	materials := make([]*entities.Material, 0, t.Len())
	var skipped []RowError
	for i := 0; i < t.Len(); i++ {
		m, err := entities.NewMaterial(
			entities.MaterialID(t.Cell(i, materialCol)),
			tabular.ParseNumber(t.Cell(i, coverageCol)),
		)
		if err != nil {
			skipped = append(skipped, RowError{Row: i + 1, Err: err})
			continue
		}
		materials = append(materials, m)
	}
	return materials, skipped, nil
}

// OrdersFromTable maps the production order extract. Quantity and delay
// columns are optional.
func OrdersFromTable(t *tabular.Table) ([]*entities.ProductionOrder, []RowError, error) {
	orderCol, err := t.Resolve(tabular.FieldOrder)
	if err != nil {
		return nil, nil, err
	}
	materialCol, err := t.Resolve(tabular.FieldOrderMaterial)
	if err != nil {
		return nil, nil, err
	}
	dueCol, err := t.Resolve(tabular.FieldDueDate)
	if err != nil {
		return nil, nil, err
	}
	statusCol, err := t.Resolve(tabular.FieldStatus)
	if err != nil {
		return nil, nil, err
	}
	qtyCol, _ := t.ResolveOptional(tabular.FieldQuantity)
	delayCol, hasDelay := t.ResolveOptional(tabular.FieldDelayDays)

	orders := make([]*entities.ProductionOrder, 0, t.Len())
	var skipped []RowError
	for i := 0; i < t.Len(); i++ {
		// a missing optional column resolves to -1, and Cell returns ""
		order, err := entities.NewProductionOrder(
			entities.OrderID(t.Cell(i, orderCol)),
			entities.MaterialID(t.Cell(i, materialCol)),
			tabular.ParseDate(t.Cell(i, dueCol)),
			t.Cell(i, statusCol),
			tabular.ParseNumber(t.Cell(i, qtyCol)),
		)
		if err != nil {
			skipped = append(skipped, RowError{Row: i + 1, Err: err})
			continue
		}
		if hasDelay {
			order.DelayDays = tabular.ParseInt(t.Cell(i, delayCol))
		}
		orders = append(orders, order)
	}
	return orders, skipped, nil
}

// ResourcesFromTable maps the work center extract, promoting the header row
// first when the export left it blank
func ResourcesFromTable(t *tabular.Table) ([]*entities.Resource, []RowError, error) {
	t = tabular.PromoteHeader(t)

	resourceCol, err := t.Resolve(tabular.FieldResource)
	if err != nil {
		return nil, nil, err
	}
	utilCol, err := t.Resolve(tabular.FieldUtilization)
	if err != nil {
		return nil, nil, err
	}
	plantCol, _ := t.ResolveOptional(tabular.FieldPlant)

	resources := make([]*entities.Resource, 0, t.Len())
	var skipped []RowError
	for i := 0; i < t.Len(); i++ {
		r, err := entities.NewResource(
			entities.ResourceID(t.Cell(i, resourceCol)),
			t.Cell(i, plantCol),
			tabular.ParseNumber(t.Cell(i, utilCol)),
		)
		if err != nil {
			skipped = append(skipped, RowError{Row: i + 1, Err: err})
			continue
		}
		resources = append(resources, r)
	}
	return resources, skipped, nil
}

// Validate checks that table carries the columns its kind requires
func Validate(kind entities.SnapshotKind, t *tabular.Table) error {
	var err error
	switch kind {
	case entities.KindMaterials:
		_, _, err = MaterialsFromTable(t)
	case entities.KindOrders:
		_, _, err = OrdersFromTable(t)
	case entities.KindResources:
		_, _, err = ResourcesFromTable(t)
	default:
		err = fmt.Errorf("%w: %q", entities.ErrUnknownSnapshotKind, kind)
	}
	return err
}
