package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shopetl/internal/config"
	"shopetl/internal/records"
	"shopetl/internal/table"
)

const salesHeader = "id,created_at,total,Order Shippings__price," +
	"customers__via__customer_id__name,Products__id,Order Items__quantity,Order Items__price\n"

const catalogHeader = "product_id,name,category_1,brand,stock,active\n"

// testConfig writes the given exports into a temp dir and returns a config
// pointing at them plus output paths in the same dir.
func testConfig(t *testing.T, sales, catalog string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}
	cfg := config.Default()
	cfg.SalesPath = write("sales.csv", sales)
	cfg.CatalogPath = write("catalog.csv", catalog)
	cfg.OrdersOut = filepath.Join(dir, "pedidos.csv")
	cfg.ItemsOut = filepath.Join(dir, "itens_vendidos.csv")
	cfg.CatalogOut = filepath.Join(dir, "catalogo_produtos.csv")
	return cfg
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestRunSplitsOrdersAndItems(t *testing.T) {
	sales := salesHeader +
		"O1,2024-01-05 10:00:00,31.5,5,Maria Silva,P1,2,10.5\n" +
		"O1,2024-01-05 10:00:00,31.5,5,Maria Silva,P2,3,2.5\n" +
		"O2,2024-01-06 09:30:00,12,4,Ana Souza,P1,1,12\n"
	catalog := catalogHeader +
		"P1,Widget,Tools,Acme,10,true\n" +
		"P2,Gadget,Toys,Acme,5,true\n"
	cfg := testConfig(t, sales, catalog)

	if err := Run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	orders := readLines(t, cfg.OrdersOut)
	wantOrders := []string{
		"id_pedido;data_pedido;id_cliente_anonimo;valor_total_pedido;valor_frete",
		"O1;2024-01-05 10:00:00;73ba96b7523b;31.5;5",
		"O2;2024-01-06 09:30:00;434ae6a3314b;12;4",
	}
	if len(orders) != len(wantOrders) {
		t.Fatalf("orders file:\n%s", strings.Join(orders, "\n"))
	}
	for i := range wantOrders {
		if orders[i] != wantOrders[i] {
			t.Fatalf("orders line %d: %q want %q", i, orders[i], wantOrders[i])
		}
	}

	items := readLines(t, cfg.ItemsOut)
	wantItems := []string{
		"id_pedido;id_produto;quantidade;preco_unitario_pago;valor_total_item",
		"O1;P1;2;10.5;21",
		"O1;P2;3;2.5;7.5",
		"O2;P1;1;12;12",
	}
	for i := range wantItems {
		if items[i] != wantItems[i] {
			t.Fatalf("items line %d: %q want %q", i, items[i], wantItems[i])
		}
	}

	// Catalog written with the renamed columns that exist in the source.
	cat := readLines(t, cfg.CatalogOut)
	if cat[0] != "id_produto;nome_oficial;categoria_principal;marca;estoque_atual;status_ativo" {
		t.Fatalf("catalog header: %q", cat[0])
	}
	if len(cat) != 3 {
		t.Fatalf("catalog rows=%d want 2", len(cat)-1)
	}
}

func TestRunDropsOrphanItems(t *testing.T) {
	sales := salesHeader +
		"O1,2024-01-05 10:00:00,31.5,5,Maria Silva,P1,2,10.5\n" +
		"O2,2024-01-06 09:30:00,12,4,Ana Souza,P9,1,12\n" +
		"O2,2024-01-06 09:30:00,12,4,Ana Souza,P2,1,3\n"
	catalog := catalogHeader +
		"P1,Widget,Tools,Acme,10,true\n" +
		"P2,Gadget,Toys,Acme,5,true\n"
	cfg := testConfig(t, sales, catalog)

	if err := Run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	items := readLines(t, cfg.ItemsOut)
	if got, want := len(items)-1, 2; got != want {
		t.Fatalf("items rows=%d want %d:\n%s", got, want, strings.Join(items, "\n"))
	}
	for _, line := range items[1:] {
		if strings.Contains(line, "P9") {
			t.Fatalf("orphan product survived validation: %q", line)
		}
	}
	// Order headers are unaffected by line-item validation.
	orders := readLines(t, cfg.OrdersOut)
	if got := len(orders) - 1; got != 2 {
		t.Fatalf("orders rows=%d want 2", got)
	}
}

func TestRunDeduplicatesCatalog(t *testing.T) {
	sales := salesHeader +
		"O1,2024-01-05 10:00:00,10,2,Maria Silva,P1,1,10\n"
	catalog := catalogHeader +
		"P1,First name,Tools,Acme,10,true\n" +
		"P1,Second name,Tools,Acme,99,false\n" +
		",No id,Tools,Acme,1,true\n" +
		"P3,,Tools,Acme,1,true\n"
	cfg := testConfig(t, sales, catalog)

	if err := Run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	cat := readLines(t, cfg.CatalogOut)
	if got := len(cat) - 1; got != 1 {
		t.Fatalf("catalog rows=%d want 1:\n%s", got, strings.Join(cat, "\n"))
	}
	if !strings.Contains(cat[1], "First name") {
		t.Fatalf("first occurrence should win: %q", cat[1])
	}
}

func TestRunFatalOnMissingSales(t *testing.T) {
	cfg := testConfig(t, "", catalogHeader)
	cfg.SalesPath = filepath.Join(t.TempDir(), "absent.csv")

	if err := Run(cfg); err == nil {
		t.Fatalf("expected error")
	}
	// Nothing was written.
	if _, err := os.Stat(cfg.OrdersOut); !os.IsNotExist(err) {
		t.Fatalf("orders file written despite fatal ingest error")
	}
}

func TestSummarize(t *testing.T) {
	orders := &table.Table{
		Columns: orderColumns,
		Rows: []records.Record{
			{colOrderTotal: "31.5", colShipping: "5"},
			{colOrderTotal: "12", colShipping: "4"},
			{colOrderTotal: "oops", colShipping: nil},
		},
	}
	items := table.New(itemColumns)
	items.Rows = make([]records.Record, 5)
	catalog := table.New([]string{colProductID})
	catalog.Rows = make([]records.Record, 7)

	s := summarize(orders, items, catalog)
	if s.Revenue != 43.5 {
		t.Fatalf("revenue=%v want 43.5", s.Revenue)
	}
	if s.Shipping != 9 {
		t.Fatalf("shipping=%v want 9", s.Shipping)
	}
	if s.AvgOrder != 21.75 {
		t.Fatalf("avg order=%v want 21.75", s.AvgOrder)
	}
	if s.Orders != 3 || s.Items != 5 || s.Products != 7 {
		t.Fatalf("counts=%v", s)
	}
}

func TestSplitOrdersNarrowSchema(t *testing.T) {
	// A source missing the shipping column still splits; the projection is
	// simply narrower.
	src := &table.Table{
		Columns: []string{colOrderID, colOrderTotal, colProductID, colQuantity, colUnitPrice},
		Rows: []records.Record{
			{colOrderID: "O1", colOrderTotal: "10", colProductID: "P1", colQuantity: "2", colUnitPrice: "3"},
		},
	}
	orders, items := splitOrders(src)
	if orders.Has(colShipping) {
		t.Fatalf("absent column resurfaced in projection")
	}
	if !items.Has(colLineTotal) {
		t.Fatalf("derived column missing")
	}
	if v := items.Rows[0][colLineTotal]; v != 6.0 {
		t.Fatalf("line total=%v want 6", v)
	}
}
