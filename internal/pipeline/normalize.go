package pipeline

import (
	"log"

	"shopetl/internal/table"
	"shopetl/internal/transformer/builtin"
)

// splitOrders normalizes the renamed sales table into the order-header and
// line-item projections. Headers keep one row per order id (first seen);
// order-level fields are assumed constant across an order's line rows.
// Line items keep one row per source row and gain the derived line total.
// Projection columns missing from the source are omitted with a warning.
func splitOrders(sales *table.Table) (orders, items *table.Table) {
	orders, missing := sales.Project(orderColumns)
	warnMissing("orders", missing)
	if orders.Has(colOrderID) {
		orders.Rows = builtin.DeDup{Keys: []string{colOrderID}}.Apply(orders.Rows)
	}
	log.Printf("normalize: %d unique orders", orders.Len())

	items, missing = sales.Project(itemColumns)
	warnMissing("items", missing)
	items.Rows = builtin.Derive{
		Target: colLineTotal,
		Left:   colQuantity,
		Right:  colUnitPrice,
	}.Apply(items.Rows)
	items.AppendColumn(colLineTotal)
	log.Printf("normalize: %d line items", items.Len())

	return orders, items
}

// warnMissing logs one schema warning per projection column absent from the
// source. Downstream consumers tolerate the narrower schema.
func warnMissing(projection string, missing []string) {
	for _, col := range missing {
		log.Printf("warning: %s: column %q absent from source, omitted", projection, col)
	}
}
