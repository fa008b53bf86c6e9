package pipeline

import (
	"log"

	"shopetl/internal/records"
	"shopetl/internal/table"
)

// orphanSample caps how many distinct orphan ids a warning lists.
const orphanSample = 5

// validateReferences drops line items whose product id is absent from the
// cleaned catalog and returns how many rows were removed. Orphans are a
// warning, not an error: the count and a truncated id sample are logged and
// the run continues. Written line items never reference a product the
// written catalog does not carry.
func validateReferences(items, catalog *table.Table) int {
	if !items.Has(colProductID) {
		log.Printf("warning: items: column %q absent, reference check skipped", colProductID)
		return 0
	}

	valid := make(map[string]struct{}, catalog.Len())
	for _, r := range catalog.Rows {
		if id, ok := r.String(colProductID); ok {
			valid[id] = struct{}{}
		}
	}

	// Distinct orphan ids in first-seen order, for a deterministic sample.
	seen := make(map[string]struct{})
	var orphans []string
	for _, r := range items.Rows {
		id := productID(r)
		if _, ok := valid[id]; ok {
			continue
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			orphans = append(orphans, id)
		}
	}
	if len(orphans) == 0 {
		log.Printf("validate: all %d line items reference cataloged products", items.Len())
		return 0
	}

	sample := orphans
	if len(sample) > orphanSample {
		sample = sample[:orphanSample]
	}
	log.Printf("warning: validate: %d sold products missing from catalog (sample: %v)", len(orphans), sample)

	kept := items.Rows[:0]
	for _, r := range items.Rows {
		if _, ok := valid[productID(r)]; ok {
			kept = append(kept, r)
		}
	}
	removed := len(items.Rows) - len(kept)
	items.Rows = kept
	log.Printf("validate: %d orphan line items removed", removed)
	return removed
}

// productID renders a row's product id; nil ids map to the empty string,
// which can never match a cataloged product.
func productID(r records.Record) string {
	id, _ := r.String(colProductID)
	return id
}
