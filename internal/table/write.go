package table

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
)

// WriteCSV writes the table as UTF-8 CSV. A zero delimiter writes
// semicolons, matching the separator the source files ship with.
func WriteCSV(t *Table, path string, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "table: create csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if delimiter != 0 {
		w.Comma = delimiter
	} else {
		w.Comma = ';'
	}

	if err := w.Write(t.Columns); err != nil {
		return eris.Wrap(err, "table: write header")
	}
	for _, row := range t.Rows {
		// Rows may be ragged; pad to the header width so readers that
		// enforce field counts can load the output.
		out := row
		if len(out) < len(t.Columns) {
			out = make([]string, len(t.Columns))
			copy(out, row)
		}
		if err := w.Write(out[:len(t.Columns)]); err != nil {
			return eris.Wrap(err, "table: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "table: flush csv")
	}
	return nil
}
