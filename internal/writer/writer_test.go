package writer

import (
	"os"
	"path/filepath"
	"testing"

	"shopetl/internal/records"
	"shopetl/internal/table"
)

func TestWrite(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"id_pedido", "id_produto", "valor_total_item"},
		Rows: []records.Record{
			{"id_pedido": "O1", "id_produto": "P1", "valor_total_item": 21.0},
			{"id_pedido": "O2", "id_produto": "P2", "valor_total_item": 7.5},
			{"id_pedido": "O3", "id_produto": nil, "valor_total_item": nil},
		},
	}
	path := filepath.Join(t.TempDir(), "itens.csv")
	if err := Write(path, tbl); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "id_pedido;id_produto;valor_total_item\n" +
		"O1;P1;21\n" +
		"O2;P2;7.5\n" +
		"O3;;\n"
	if string(data) != want {
		t.Fatalf("output:\n%s\nwant:\n%s", data, want)
	}
}

func TestWriteQuotesDelimiter(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"nome_oficial"},
		Rows:    []records.Record{{"nome_oficial": "Kit; 3 pieces"}},
	}
	path := filepath.Join(t.TempDir(), "catalogo.csv")
	if err := Write(path, tbl); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, _ := os.ReadFile(path)
	want := "nome_oficial\n\"Kit; 3 pieces\"\n"
	if string(data) != want {
		t.Fatalf("output:\n%s\nwant:\n%s", data, want)
	}
}

func TestWriteBadDestination(t *testing.T) {
	tbl := table.New([]string{"a"})
	if err := Write(filepath.Join(t.TempDir(), "no", "such", "dir", "x.csv"), tbl); err == nil {
		t.Fatalf("expected error")
	}
}
