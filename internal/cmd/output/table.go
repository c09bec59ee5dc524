package output

import "github.com/agristack/fieldscope/pkg/telemetry"

// FromTable converts a telemetry table into renderable Data. Null cells
// render as empty strings.
func FromTable(t *telemetry.Table) Data {
	columns := t.Columns()
	rows := make([][]string, 0, t.Len())
	for _, row := range t.Rows() {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = row[col].String()
		}
		rows = append(rows, cells)
	}
	return Data{Headers: columns, Rows: rows}
}

// TableDocument is the structured (json/yaml) form of a telemetry table.
type TableDocument struct {
	Columns []string            `json:"columns" yaml:"columns"`
	Rows    []map[string]string `json:"rows"    yaml:"rows"`
}

// DocumentFromTable converts a telemetry table into its structured form for
// json and yaml output. Null cells are omitted.
func DocumentFromTable(t *telemetry.Table) TableDocument {
	doc := TableDocument{Columns: t.Columns(), Rows: make([]map[string]string, 0, t.Len())}
	for _, row := range t.Rows() {
		cells := make(map[string]string, len(row))
		for _, col := range doc.Columns {
			if v := row[col]; !v.IsNull() {
				cells[col] = v.String()
			}
		}
		doc.Rows = append(doc.Rows, cells)
	}
	return doc
}
