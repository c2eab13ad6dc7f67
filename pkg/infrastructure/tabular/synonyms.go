package tabular

// Field is a logical column with the physical header names it is known by
// across extract layouts. Synonyms are tried in order.
type Field struct {
	Name     string
	Synonyms []string
}

var (
	FieldMaterial = Field{"material", []string{"Material", "material", "Material ID", "MATNR"}}
	FieldCoverage = Field{"coverage", []string{
		"CoberEstq", "CoberEstq.", "Cobertura", "Coverage", "Cobertura (dias)", "coverage_days",
	}}

	FieldOrder         = Field{"order", []string{"Ordem", "Ordem de produção", "Order"}}
	FieldOrderMaterial = Field{"order material", []string{"Material", "Material da ordem", "Matéria"}}
	FieldDueDate       = Field{"due date", []string{
		"Data de conclusão base", "D.conclusão base", "Data fim", "Finish date", "due_date", "data_fim",
	}}
	FieldStatus   = Field{"status", []string{"Status do sistema", "Status do sist.", "Status"}}
	FieldQuantity = Field{"quantity", []string{
		"Quantidade base", "Qtd. base", "Quantidade da ordem", "Quantidade", "Qty",
	}}
	FieldDelayDays = Field{"delay days", []string{"Dias Atraso", "dias_atraso", "delay_days"}}

	FieldResource    = Field{"resource", []string{"Recurso", "Work Center", "Centro de trabalho"}}
	FieldPlant       = Field{"plant", []string{"Unidade gerencial", "Centro", "Plant"}}
	FieldUtilization = Field{"utilization", []string{
		"Grau utilização em %", "Utilização %", "Utilização em %", "Capacity usage %", "Utilization_pct", "UTIL_PCT",
	}}
)

// headerMarkers identify the real header row of work center exports whose
// first row was left blank
var headerMarkers = []string{"recurso", "work center", "centro de trabalho"}
