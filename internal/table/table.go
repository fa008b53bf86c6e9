// Package table models an in-memory tabular dataset: an ordered column list
// plus a slice of row records. Column order is what the writer emits and row
// order is what first-seen deduplication relies on, so both are preserved by
// every operation in this package.
package table

import "shopetl/internal/records"

// Table is an ordered set of named columns and their rows. Every row holds a
// key for every column (nil when the source cell was empty), so column
// presence can be tested on Columns alone.
type Table struct {
	Columns []string
	Rows    []records.Record
}

// New returns an empty table with the given column order.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// Len reports the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Has reports whether the table carries the named column.
func (t *Table) Has(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Project returns a new table restricted to the requested columns, in request
// order, silently omitting columns the table does not have. Rows are copied so
// the projection owns its data. Missing requested columns are reported so the
// caller can log a schema warning.
func (t *Table) Project(cols []string) (*Table, []string) {
	keep := make([]string, 0, len(cols))
	var missing []string
	for _, c := range cols {
		if t.Has(c) {
			keep = append(keep, c)
		} else {
			missing = append(missing, c)
		}
	}
	out := &Table{Columns: keep, Rows: make([]records.Record, 0, len(t.Rows))}
	for _, r := range t.Rows {
		nr := make(records.Record, len(keep))
		for _, c := range keep {
			nr[c] = r[c]
		}
		out.Rows = append(out.Rows, nr)
	}
	return out, missing
}

// Rename applies an old-name to new-name mapping to the column list and to
// every row. Columns absent from the mapping keep their name; mapping entries
// for columns the table does not have are ignored.
func (t *Table) Rename(mapping map[string]string) {
	renamed := make(map[string]string, len(mapping))
	for i, c := range t.Columns {
		if to, ok := mapping[c]; ok && to != "" {
			t.Columns[i] = to
			renamed[c] = to
		}
	}
	if len(renamed) == 0 {
		return
	}
	for _, r := range t.Rows {
		for from, to := range renamed {
			if v, ok := r[from]; ok {
				delete(r, from)
				r[to] = v
			}
		}
	}
}

// AppendColumn adds a column name to the end of the column list. Rows are
// expected to be populated by the caller (e.g. a derive transform).
func (t *Table) AppendColumn(col string) {
	if !t.Has(col) {
		t.Columns = append(t.Columns, col)
	}
}
