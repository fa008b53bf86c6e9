package pipeline

import (
	"log"

	"shopetl/internal/table"
	"shopetl/internal/transformer"
	"shopetl/internal/transformer/builtin"
)

// cleanCatalog projects the raw catalog onto the mapped columns that are
// actually present (in source order), renames them, drops rows missing a
// product id or name, and de-duplicates by product id keeping the first
// occurrence. It returns the cleaned table and the number of rows removed.
func cleanCatalog(raw *table.Table, mapping map[string]string) (*table.Table, int) {
	wanted := make([]string, 0, len(mapping))
	for _, c := range raw.Columns {
		if _, ok := mapping[c]; ok {
			wanted = append(wanted, c)
		}
	}
	catalog, _ := raw.Project(wanted)
	catalog.Rename(mapping)

	before := catalog.Len()
	chain := transformer.Chain{
		builtin.Require{Fields: []string{colProductID, colProductName}},
		builtin.DeDup{Keys: []string{colProductID}},
	}
	catalog.Rows = chain.Apply(catalog.Rows)
	dropped := before - catalog.Len()
	log.Printf("catalog: %d unique products (%d duplicate or invalid rows removed)", catalog.Len(), dropped)
	return catalog, dropped
}
