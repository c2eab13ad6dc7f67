package testing

import (
	"time"

	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/services"
	"github.com/vsinha/planboard/pkg/infrastructure/repositories/memory"
)

// Today is the reference date of every scenario in this package
var Today = time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

// Clock returns a clock fixed at Today
func Clock() services.FixedClock {
	return services.FixedClock{Day: Today}
}

// Material builds a material row; a negative coverage leaves it unparsed
func Material(id string, coverage float64) *entities.Material {
	value := entities.Known(coverage)
	if coverage < 0 {
		value = entities.Unparsed[float64]("n/a")
	}
	return &entities.Material{ID: entities.MaterialID(id), CoverageDays: value}
}

// Order builds an order row due dueInDays after Today
func Order(id, material string, dueInDays int, status string, quantity float64) *entities.ProductionOrder {
	return &entities.ProductionOrder{
		ID:        entities.OrderID(id),
		Material:  entities.MaterialID(material),
		DueDate:   entities.Known(Today.AddDate(0, 0, dueInDays)),
		Status:    status,
		Quantity:  entities.Known(quantity),
		DelayDays: entities.Missing[int](),
	}
}

// Resource builds a work center row; a negative utilization leaves it unparsed
func Resource(id, plant string, utilization float64) *entities.Resource {
	value := entities.Known(utilization)
	if utilization < 0 {
		value = entities.Unparsed[float64]("#N/A")
	}
	return &entities.Resource{ID: entities.ResourceID(id), Plant: plant, Utilization: value}
}

// BuildPlantScenario builds a small plant with one material of each coverage
// bucket, a mix of late, on-time and closed orders, and one work center in
// each utilization bucket. Every snapshot carries one unparseable row.
func BuildPlantScenario() *memory.SnapshotRepository {
	repo := memory.NewSnapshotRepository()

	repo.SaveMaterials([]*entities.Material{
		Material("M-100", 5),  // at risk, score 92.9
		Material("M-200", 60), // excess, score 25.5
		Material("M-300", 20), // normal, score 63.3
		Material("M-400", -1), // dropped
	})

	undated := Order("O-5", "M-300", 0, "REL", 10)
	undated.DueDate = entities.Unparsed[time.Time]("soon")

	repo.SaveOrders([]*entities.ProductionOrder{
		Order("O-1", "M-100", -5, "REL", 100),      // 5 days late
		Order("O-2", "M-100", 3, "REL", 150),       // due in week 1
		Order("O-3", "M-200", -30, "TECO", 80),     // closed
		Order("O-4", "M-300", -12, "REL CRTD", 60), // 12 days late
		undated,
	})

	repo.SaveResources([]*entities.Resource{
		Resource("WC-01", "P100", 120),
		Resource("WC-02", "P100", 95),
		Resource("WC-03", "P200", 60),
		Resource("WC-04", "P200", -1),
	})

	return repo
}

// The same scenario as raw extracts, as planners upload them
const (
	MaterialsCSV = "Material;CoberEstq.\n" +
		"M-100;5\n" +
		"M-200;60\n" +
		"M-300;20\n" +
		"M-400;n/a\n"

	OrdersCSV = "Ordem;Material;Data fim;Status do sistema;Quantidade base\n" +
		"O-1;M-100;25/06/2025;REL;100\n" +
		"O-2;M-100;03/07/2025;REL;150\n" +
		"O-3;M-200;31/05/2025;TECO;80\n" +
		"O-4;M-300;18/06/2025;REL CRTD;60\n" +
		"O-5;M-300;soon;REL;10\n"

	ResourcesCSV = ";;\n" +
		"Recurso;Centro;Grau utilização em %\n" +
		"WC-01;P100;120\n" +
		"WC-02;P100;95\n" +
		"WC-03;P200;60\n" +
		"WC-04;P200;#N/A\n"
)
