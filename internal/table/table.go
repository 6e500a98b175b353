// Package table reads heterogeneous tabular sources (CSV with unknown
// delimiter and encoding, XLSX) into a uniform in-memory form.
package table

// Table is an ordered set of named columns over string rows. Rows may be
// ragged; missing cells read as empty.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// New builds a table and its column index.
func New(columns []string, rows [][]string) *Table {
	t := &Table{Columns: columns, Rows: rows}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cell returns the value of the named column in row i, or "" when the column
// is unknown or the row is too short.
func (t *Table) Cell(i int, column string) string {
	idx, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.Rows) {
		return ""
	}
	row := t.Rows[i]
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// AddColumn appends a column with one value per row. Short value slices are
// padded with empty strings. Ragged rows are padded to the previous width
// first so the new value lands at the new column's index.
func (t *Table) AddColumn(name string, values []string) {
	width := len(t.Columns)
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		for len(t.Rows[i]) < width {
			t.Rows[i] = append(t.Rows[i], "")
		}
		t.Rows[i] = append(t.Rows[i][:width], v)
	}
	t.reindex()
}
