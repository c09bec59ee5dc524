package telemetry

import "slices"

// Row holds one record's fields keyed by column name. Looking up an absent
// column yields the null Value.
type Row map[string]Value

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered-column, in-memory table of telemetry rows. The column
// list is the table's schema descriptor; rows may be sparse, with absent
// cells reading as null.
type Table struct {
	columns []string
	rows    []Row
}

// NewTable creates a table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{columns: slices.Clone(columns)}
}

// Columns returns a copy of the ordered column list.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// HasColumn reports whether the named column is part of the schema.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.columns, name)
}

// AddColumn appends a column to the schema if not already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
}

// Append adds a row to the table.
func (t *Table) Append(row Row) {
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns the backing row slice. Callers treating the table as a
// read-only view must not mutate the returned rows.
func (t *Table) Rows() []Row {
	return t.rows
}

// Value returns the cell at row i, column name. Absent cells are null.
func (t *Table) Value(i int, name string) Value {
	return t.rows[i][name]
}

// Clone returns a deep copy of the table: new column list, new rows.
func (t *Table) Clone() *Table {
	out := &Table{columns: slices.Clone(t.columns), rows: make([]Row, len(t.rows))}
	for i, row := range t.rows {
		out.rows[i] = row.Clone()
	}
	return out
}

// Select projects the table onto the given columns in the given order.
// Columns absent from the table are skipped; cells outside the selection
// are dropped from the new rows.
func (t *Table) Select(columns ...string) *Table {
	kept := make([]string, 0, len(columns))
	for _, col := range columns {
		if t.HasColumn(col) {
			kept = append(kept, col)
		}
	}

	out := NewTable(kept...)
	for _, row := range t.rows {
		projected := make(Row, len(kept))
		for _, col := range kept {
			if v, ok := row[col]; ok {
				projected[col] = v
			}
		}
		out.Append(projected)
	}
	return out
}

// Filter returns a table with the same schema holding the rows the
// predicate matched. Rows are shared with the receiver, not copied.
func (t *Table) Filter(pred func(Row) bool) *Table {
	out := NewTable(t.columns...)
	for _, row := range t.rows {
		if pred(row) {
			out.Append(row)
		}
	}
	return out
}

// WithRows returns a table sharing this table's schema with the given rows.
func (t *Table) WithRows(rows []Row) *Table {
	return &Table{columns: slices.Clone(t.columns), rows: rows}
}
