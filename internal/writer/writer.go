// Package writer serializes tables to semicolon-delimited UTF-8 text, the
// shape the downstream SQL import expects: a header row of column names, no
// row-index column.
package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"shopetl/internal/table"
)

// Write emits t to path. Cells render as their string form; nil cells render
// empty and derived float64 cells use the shortest round-trip decimal form.
// A failure leaves any previously written files in place; there is no
// cross-file rollback.
func Write(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write %s: header: %w", path, err)
	}
	row := make([]string, len(t.Columns))
	for _, rec := range t.Rows {
		for i, col := range t.Columns {
			row[i] = formatCell(rec[col])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// formatCell renders a single cell value.
func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
