package domain

// Table is a block of positional cells handed over by a tabular source
// (CSV file, spreadsheet export, database). Cells are kept as text; typing
// happens in the demand normalizer.
type Table struct {
	Header []string
	Rows   [][]string
}

// Width is the number of addressable columns.
// Header width wins when a header is present, otherwise the widest row.
func (t Table) Width() int {
	if len(t.Header) > 0 {
		return len(t.Header)
	}

	w := 0
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Cell returns the cell at (row, col), or "" when the row is shorter.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}
