// Package pipeline wires the transformation stages into the single forward
// pass of the batch run: ingest sales, anonymize, rename, split into order
// headers and line items, ingest and clean the catalog, enforce referential
// integrity, write the three outputs, and report summary statistics. Stages
// run strictly in sequence; each completes before the next begins and no
// stage reads back from a later one.
package pipeline

import (
	"log"
	"time"

	"shopetl/internal/config"
	"shopetl/internal/ingest"
	"shopetl/internal/metrics"
	"shopetl/internal/transformer/builtin"
)

// Canonical (post-rename) column names.
const (
	colOrderID     = "id_pedido"
	colOrderDate   = "data_pedido"
	colCustomerID  = "id_cliente_anonimo"
	colOrderTotal  = "valor_total_pedido"
	colShipping    = "valor_frete"
	colProductID   = "id_produto"
	colProductName = "nome_oficial"
	colQuantity    = "quantidade"
	colUnitPrice   = "preco_unitario_pago"
	colLineTotal   = "valor_total_item"
)

// Projections over the renamed sales table.
var (
	orderColumns = []string{colOrderID, colOrderDate, colCustomerID, colOrderTotal, colShipping}
	itemColumns  = []string{colOrderID, colProductID, colQuantity, colUnitPrice}
)

// Run executes the whole pipeline for cfg. An error from either ingestion
// aborts the run before any output file is written; all later anomalies are
// absorbed as logged warnings.
func Run(cfg *config.Config) error {
	// Sales: ingest, anonymize, rename, split.
	start := time.Now()
	sales, err := ingest.Load(cfg.SalesPath)
	metrics.RecordStage("ingest_sales", err, time.Since(start))
	if err != nil {
		return err
	}
	metrics.RecordRows("sales_loaded", int64(sales.Len()))

	start = time.Now()
	sales.Rows = builtin.Anonymize{Fields: cfg.SensitiveColumns}.Apply(sales.Rows)
	metrics.RecordStage("anonymize", nil, time.Since(start))
	log.Printf("anonymize: %d sensitive columns processed", len(cfg.SensitiveColumns))

	sales.Rename(cfg.SalesRename)

	start = time.Now()
	orders, items := splitOrders(sales)
	metrics.RecordStage("normalize", nil, time.Since(start))
	metrics.RecordRows("orders", int64(orders.Len()))
	metrics.RecordRows("items", int64(items.Len()))

	// Catalog: ingest and clean.
	start = time.Now()
	rawCatalog, err := ingest.Load(cfg.CatalogPath)
	metrics.RecordStage("ingest_catalog", err, time.Since(start))
	if err != nil {
		return err
	}

	start = time.Now()
	catalog, dropped := cleanCatalog(rawCatalog, cfg.CatalogRename)
	metrics.RecordStage("clean_catalog", nil, time.Since(start))
	metrics.RecordRows("catalog", int64(catalog.Len()))
	metrics.RecordRows("catalog_dropped", int64(dropped))

	// Referential integrity between line items and catalog.
	start = time.Now()
	removed := validateReferences(items, catalog)
	metrics.RecordStage("validate_references", nil, time.Since(start))
	metrics.RecordRows("orphans_removed", int64(removed))

	// Outputs, in reporting order. No rollback of already written files.
	start = time.Now()
	err = writeOutputs(cfg, orders, items, catalog)
	metrics.RecordStage("write", err, time.Since(start))
	if err != nil {
		return err
	}

	logSummary(summarize(orders, items, catalog))
	return nil
}
