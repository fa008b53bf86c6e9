package pipeline

import (
	"log"

	"shopetl/internal/config"
	"shopetl/internal/table"
	"shopetl/internal/writer"
)

// writeOutputs emits the three tables in reporting order: orders, line
// items, catalog. A failure stops the sequence but does not remove files
// already written.
func writeOutputs(cfg *config.Config, orders, items, catalog *table.Table) error {
	outputs := []struct {
		path string
		t    *table.Table
		what string
	}{
		{cfg.OrdersOut, orders, "orders"},
		{cfg.ItemsOut, items, "line items"},
		{cfg.CatalogOut, catalog, "catalog entries"},
	}
	for _, o := range outputs {
		if err := writer.Write(o.path, o.t); err != nil {
			return err
		}
		log.Printf("write: %s: %d %s", o.path, o.t.Len(), o.what)
	}
	return nil
}
